package agent

import (
	"context"

	// Packages
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	toolchat "github.com/mutablelogic/go-toolchat"
	client "github.com/mutablelogic/go-toolchat/pkg/mcp/client"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the agent
type Opt func(*opt) error

// TransportFunc returns the transport used to connect to a named server
type TransportFunc func(ctx context.Context, name string, server ServerConfig) (mcpsdk.Transport, error)

type opt struct {
	log       *zap.Logger
	tracer    trace.Tracer
	transport TransportFunc
	impl      *mcpsdk.Implementation
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func apply(opts ...Opt) (*opt, error) {
	o := &opt{
		log:       zap.NewNop(),
		tracer:    noop.NewTracerProvider().Tracer(""),
		transport: commandTransport,
		impl:      &mcpsdk.Implementation{Name: "toolchat-agent", Version: "dev"},
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

// WithTransport replaces the function which starts each server, for
// example to connect to in-process servers
func WithTransport(fn TransportFunc) Opt {
	return func(o *opt) error {
		if fn == nil {
			return toolchat.ErrBadParameter.With("transport is required")
		}
		o.transport = fn
		return nil
	}
}

// WithImplementation sets the client name and version sent to servers
func WithImplementation(name, version string) Opt {
	return func(o *opt) error {
		if name == "" {
			return toolchat.ErrBadParameter.With("name is required")
		}
		o.impl = &mcpsdk.Implementation{Name: name, Version: version}
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func commandTransport(ctx context.Context, _ string, server ServerConfig) (mcpsdk.Transport, error) {
	return client.NewCommandTransport(ctx, server.Command, server.Args, server.Env)
}
