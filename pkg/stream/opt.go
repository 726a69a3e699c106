package stream

import (
	"context"
	"time"

	// Packages
	toolchat "github.com/mutablelogic/go-toolchat"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the emitter
type Opt func(*opt) error

// SleepFunc waits for the duration, returning early with an error when the
// context is done
type SleepFunc func(ctx context.Context, d time.Duration) error

type opt struct {
	delay time.Duration
	clock func() time.Time
	sleep SleepFunc
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func apply(opts ...Opt) (*opt, error) {
	o := &opt{
		delay: DefaultDelay,
		clock: time.Now,
		sleep: sleep,
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

// WithDelay sets the delay after each word. Zero disables the delay.
func WithDelay(v time.Duration) Opt {
	return func(o *opt) error {
		if v < 0 {
			return toolchat.ErrBadParameter.With("delay cannot be negative")
		}
		o.delay = v
		return nil
	}
}

// WithClock sets the clock used for the created timestamp
func WithClock(fn func() time.Time) Opt {
	return func(o *opt) error {
		if fn == nil {
			return toolchat.ErrBadParameter.With("clock cannot be nil")
		}
		o.clock = fn
		return nil
	}
}

// WithSleep replaces the function used to wait between words
func WithSleep(fn SleepFunc) Opt {
	return func(o *opt) error {
		if fn == nil {
			return toolchat.ErrBadParameter.With("sleep cannot be nil")
		}
		o.sleep = fn
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
