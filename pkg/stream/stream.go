/*
stream splits a completed reply into OpenAI-compatible completion chunks,
emitted word by word with a fixed delay, and writes them as server-sent
events.
*/
package stream

import (
	"context"
	"encoding/json"
	"iter"
	"strings"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Emitter produces the sequence of events for a completed reply
type Emitter struct {
	opt
}

// Event is either a chunk, or the end-of-stream sentinel when Chunk is nil
type Event struct {
	Chunk *schema.ChatCompletionChunk
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Done         = "[DONE]"
	DefaultDelay = 50 * time.Millisecond
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEmitter returns an emitter with a 50ms delay between words unless
// overridden by options
func NewEmitter(opts ...Opt) (*Emitter, error) {
	o, err := apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Emitter{opt: *o}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Events returns the events for the content: a start chunk with the
// assistant role, one chunk per word, a stop chunk and the sentinel. Every
// word except the last carries a trailing space. The sequence stops early
// when the context is cancelled or the consumer stops iterating.
func (e *Emitter) Events(ctx context.Context, id, model, content string) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		created := e.clock().Unix()
		chunk := func(delta schema.Delta, finish *string) Event {
			return Event{Chunk: &schema.ChatCompletionChunk{
				Id:      id,
				Object:  schema.ObjectChunk,
				Created: created,
				Model:   model,
				Choices: []schema.StreamChoice{{Index: 0, Delta: delta, FinishReason: finish}},
			}}
		}

		// Start
		if ctx.Err() != nil || !yield(chunk(schema.Delta{Role: schema.RoleAssistant}, nil)) {
			return
		}

		// Words
		words := strings.Fields(content)
		for i, word := range words {
			if i < len(words)-1 {
				word += " "
			}
			if ctx.Err() != nil || !yield(chunk(schema.Delta{Content: word}, nil)) {
				return
			}
			if err := e.sleep(ctx, e.delay); err != nil {
				return
			}
		}

		// Stop and sentinel
		stop := schema.FinishReasonStop
		if ctx.Err() != nil || !yield(chunk(schema.Delta{}, &stop)) {
			return
		}
		if ctx.Err() == nil {
			yield(Event{})
		}
	}
}

// IsDone returns true for the end-of-stream sentinel
func (e Event) IsDone() bool {
	return e.Chunk == nil
}

// MarshalText returns the event payload: the chunk as JSON, or the sentinel
func (e Event) MarshalText() ([]byte, error) {
	if e.IsDone() {
		return []byte(Done), nil
	}
	return json.Marshal(e.Chunk)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e Event) String() string {
	data, err := e.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(data)
}
