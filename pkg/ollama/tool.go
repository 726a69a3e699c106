package ollama

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	toolchat "github.com/mutablelogic/go-toolchat"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a tool definition offered to the model
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the definition of a tool
func NewTool(t tool.Tool) (*Tool, error) {
	if t == nil {
		return nil, toolchat.ErrBadParameter.With("tool cannot be nil")
	}
	schema, err := t.Schema()
	if err != nil {
		return nil, toolchat.ErrBadParameter.Withf("%s: %v", t.Name(), err)
	}
	if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}
	return &Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  schema,
		},
	}, nil
}

// NewTools returns the definitions of every tool in the toolkit
func NewTools(tk *tool.Toolkit) ([]*Tool, error) {
	if tk == nil {
		return nil, nil
	}
	tools := tk.Tools()
	result := make([]*Tool, 0, len(tools))
	for _, t := range tools {
		def, err := NewTool(t)
		if err != nil {
			return nil, err
		}
		result = append(result, def)
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Tool) String() string {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
