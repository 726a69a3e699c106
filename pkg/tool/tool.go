package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"sync"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	toolchat "github.com/mutablelogic/go-toolchat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input, or nil if any input
	// is accepted
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names. It is safe for
// concurrent use.
type Toolkit struct {
	sync.RWMutex
	tools map[string]entry
}

// entry is a registered tool with its resolved input schema
type entry struct {
	Tool
	resolved *jsonschema.Resolved
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Tool names follow the MCP naming rules, so remote tools such as
// "github.search" can be registered
var reToolName = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name, or a
// schema which cannot be resolved.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]entry, len(tools)),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Register adds one or more tools to the toolkit. The schema of each tool
// is resolved once, here.
func (tk *Toolkit) Register(tools ...Tool) error {
	tk.Lock()
	defer tk.Unlock()

	for _, t := range tools {
		if t == nil {
			return toolchat.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !reToolName.MatchString(name) {
			return toolchat.ErrBadParameter.Withf("invalid tool name: %q", name)
		} else if _, exists := tk.tools[name]; exists {
			return toolchat.ErrConflict.Withf("duplicate tool name: %q", name)
		}

		e := entry{Tool: t}
		schema, err := t.Schema()
		if err != nil {
			return toolchat.ErrBadParameter.Withf("%s: schema: %v", name, err)
		} else if schema != nil {
			if e.resolved, err = schema.Resolve(nil); err != nil {
				return toolchat.ErrBadParameter.Withf("%s: schema: %v", name, err)
			}
		}
		tk.tools[name] = e
	}
	return nil
}

// Tools returns all tools in the toolkit, sorted by name
func (tk *Toolkit) Tools() []Tool {
	tk.RLock()
	defer tk.RUnlock()

	result := make([]Tool, 0, len(tk.tools))
	for _, name := range tk.names() {
		result = append(result, tk.tools[name].Tool)
	}
	return result
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	tk.RLock()
	defer tk.RUnlock()
	if e, exists := tk.tools[name]; exists {
		return e.Tool
	}
	return nil
}

// Run executes a tool by name. The input may be json.RawMessage, []byte,
// nil or any value which can be marshalled to JSON. A JSON null is the same
// as no input. Any input is validated against the schema of the tool before
// it is run.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	tk.RLock()
	e, exists := tk.tools[name]
	tk.RUnlock()
	if !exists {
		return nil, toolchat.ErrNotFound.Withf("tool not found: %q", name)
	}

	data, err := rawInput(input)
	if err != nil {
		return nil, err
	}
	if data != nil && e.resolved != nil {
		var value map[string]any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, toolchat.ErrBadParameter.Withf("%s: input is not an object: %v", name, err)
		} else if err := e.resolved.Validate(value); err != nil {
			return nil, toolchat.ErrBadParameter.Withf("%s: %v", name, err)
		}
	}

	return e.Run(ctx, data)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	tk.RLock()
	defer tk.RUnlock()
	return "[" + strings.Join(tk.names(), " ") + "]"
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (tk *Toolkit) names() []string {
	names := make([]string, 0, len(tk.tools))
	for name := range tk.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rawInput(input any) (json.RawMessage, error) {
	var data []byte
	switch v := input.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, toolchat.ErrBadParameter.Withf("input: %v", err)
		}
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
