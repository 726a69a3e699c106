package tool

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Interpreter decides whether a model reply is a tool call, and if the
// named tool is in its toolkit, runs it and substitutes the result.
type Interpreter struct {
	toolkit *Toolkit
	log     *zap.Logger
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewInterpreter returns an interpreter over the toolkit. A nil logger
// disables logging.
func NewInterpreter(toolkit *Toolkit, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		toolkit: toolkit,
		log:     log,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Interpret returns the content to send to the user for the raw reply, and
// whether a tool was executed. Errors never escape: a failing tool yields
// its error message as content.
func (i *Interpreter) Interpret(ctx context.Context, raw string) (string, bool) {
	reply := Decode(raw)
	if !reply.IsCall() {
		i.log.Debug("reply is not a tool call")
		return raw, false
	}

	// Unknown tools pass through unchanged
	if i.toolkit == nil || i.toolkit.Lookup(reply.Call.Tool) == nil {
		i.log.Debug("reply names an unknown tool", zap.String("tool", reply.Call.Tool))
		return raw, false
	}

	// Run the tool
	input, err := reply.Call.Input()
	if err != nil {
		return err.Error(), true
	}
	result, err := i.toolkit.Run(ctx, reply.Call.Tool, input)
	if err != nil {
		i.log.Warn("tool call failed", zap.String("tool", reply.Call.Tool), zap.Error(err))
		return err.Error(), true
	}

	content := ResultString(result)
	i.log.Info("tool call executed",
		zap.String("tool", reply.Call.Tool),
		zap.Any("parameters", reply.Call.Parameters),
		zap.String("result", content),
	)
	return content, true
}

// ResultString returns the text for a tool result: strings as-is, Stringers
// by their String method, nil as empty and other values as JSON
func ResultString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
