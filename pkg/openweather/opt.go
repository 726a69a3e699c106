package openweather

import (
	"net/http"
	"strings"
	"time"

	// Packages
	toolchat "github.com/mutablelogic/go-toolchat"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the client
type Opt func(*opt) error

type opt struct {
	endpoint  string
	timeout   time.Duration
	transport http.RoundTripper
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func apply(opts ...Opt) (*opt, error) {
	o := &opt{
		endpoint: endPoint,
		timeout:  defaultTimeout,
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

// WithEndpoint overrides the provider base URL, which is used in tests
func WithEndpoint(v string) Opt {
	return func(o *opt) error {
		if v = strings.TrimSuffix(strings.TrimSpace(v), "/"); v == "" {
			return toolchat.ErrBadParameter.With("endpoint is required")
		}
		o.endpoint = v
		return nil
	}
}

// WithTimeout sets the timeout for a lookup. Zero disables the timeout.
func WithTimeout(v time.Duration) Opt {
	return func(o *opt) error {
		if v < 0 {
			return toolchat.ErrBadParameter.With("timeout cannot be negative")
		}
		o.timeout = v
		return nil
	}
}

// WithTransport sets the HTTP transport, for example an instrumented one
func WithTransport(v http.RoundTripper) Opt {
	return func(o *opt) error {
		o.transport = v
		return nil
	}
}
