package stream

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ContentType = "text/event-stream"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SetHeaders sets the response headers for an event stream
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// Write writes each event as "data: <payload>\n\n", flushing after each
// event when the writer supports it. It returns the first write error, or
// the context error when the context was cancelled.
func Write(ctx context.Context, w io.Writer, events iter.Seq[Event]) error {
	flusher, _ := w.(http.Flusher)
	for event := range events {
		data, err := event.MarshalText()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return ctx.Err()
}
