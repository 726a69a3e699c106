package tool

import (
	"encoding/json"
	"fmt"
	"sync"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	toolchat "github.com/mutablelogic/go-toolchat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Call is a tool invocation embedded in a model reply, in the form
// {"tool": "weather", "parameters": {"city": "London"}}
type Call struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

// Reply is a model reply decoded into exactly one of two variants: a tool
// call, or plain text which should be shown to the user verbatim.
type Reply struct {
	Call *Call
	Text string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	callSchema     *jsonschema.Resolved
	callSchemaErr  error
	callSchemaOnce sync.Once
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Decode returns the tool call variant if the raw reply is a JSON object with
// a string "tool" and an object "parameters", and the plain text variant
// otherwise. Additional fields in the object are ignored.
func Decode(raw string) Reply {
	if call, err := decodeCall(raw); err == nil {
		return Reply{Call: call}
	}
	return Reply{Text: raw}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsCall returns true if the reply is a tool call
func (r Reply) IsCall() bool {
	return r.Call != nil
}

// String returns the parameter as a string, or the fallback if the
// parameter is absent or null
func (c Call) String(key, fallback string) string {
	v, exists := c.Parameters[key]
	if !exists || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Input returns the parameters encoded as JSON
func (c Call) Input() (json.RawMessage, error) {
	if c.Parameters == nil {
		return json.RawMessage(`{}`), nil
	}
	return json.Marshal(c.Parameters)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeCall(raw string) (*Call, error) {
	resolved, err := resolvedCallSchema()
	if err != nil {
		return nil, err
	}

	// Only a JSON object can be a call
	var value map[string]any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, toolchat.ErrBadParameter.With(err)
	} else if value == nil {
		return nil, toolchat.ErrBadParameter.With("null is not a tool call")
	}

	// Check the shape
	if err := resolved.Validate(value); err != nil {
		return nil, toolchat.ErrBadParameter.With(err)
	}

	// Decode
	var call Call
	if err := json.Unmarshal([]byte(raw), &call); err != nil {
		return nil, toolchat.ErrBadParameter.With(err)
	}
	return &call, nil
}

func resolvedCallSchema() (*jsonschema.Resolved, error) {
	callSchemaOnce.Do(func() {
		schema := &jsonschema.Schema{
			Type:     "object",
			Required: []string{"tool", "parameters"},
			Properties: map[string]*jsonschema.Schema{
				"tool":       {Type: "string"},
				"parameters": {Type: "object"},
			},
		}
		callSchema, callSchemaErr = schema.Resolve(nil)
	})
	return callSchema, callSchemaErr
}
