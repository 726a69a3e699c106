package relay

import (
	"time"

	// Packages
	toolchat "github.com/mutablelogic/go-toolchat"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the relay
type Opt func(*opt) error

type opt struct {
	prompt string
	log    *zap.Logger
	tracer trace.Tracer
	clock  func() time.Time
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPromptFile = "prompt.md"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func apply(opts ...Opt) (*opt, error) {
	o := &opt{
		prompt: DefaultPromptFile,
		log:    zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer(""),
		clock:  time.Now,
	}
	for _, fn := range opts {
		if err := fn(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithPromptFile sets the path of the system prompt, which is read on every
// request. An empty path disables the system prompt.
func WithPromptFile(path string) Opt {
	return func(o *opt) error {
		o.prompt = path
		return nil
	}
}

func WithLogger(log *zap.Logger) Opt {
	return func(o *opt) error {
		if log == nil {
			return toolchat.ErrBadParameter.With("logger is required")
		}
		o.log = log
		return nil
	}
}

func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opt) error {
		if tracer == nil {
			return toolchat.ErrBadParameter.With("tracer is required")
		}
		o.tracer = tracer
		return nil
	}
}

// WithClock sets the clock used for created timestamps
func WithClock(fn func() time.Time) Opt {
	return func(o *opt) error {
		if fn == nil {
			return toolchat.ErrBadParameter.With("clock is required")
		}
		o.clock = fn
		return nil
	}
}
