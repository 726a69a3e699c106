package openweather

import (
	"bytes"
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	toolchat "github.com/mutablelogic/go-toolchat"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// WeatherRequest is the input for the weather tool. The city can be any
// JSON value, and is looked up by its text form.
type WeatherRequest struct {
	City any `json:"city,omitempty"`
}

type weatherTool struct {
	client *Client
}

var _ tool.Tool = (*weatherTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ToolName        = "weather"
	unknownLocation = "unknown"
	cityParameter   = "city"
	cityDescription = "City name, for example London or Paris,FR"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the weather tool, which describes the current weather for
// a city. The tool never returns an error for a failed lookup: the failure is
// described in the returned text.
func NewTool(client *Client) (tool.Tool, error) {
	if client == nil {
		return nil, toolchat.ErrBadParameter.With("client is required")
	}
	return &weatherTool{client: client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (*weatherTool) Name() string {
	return ToolName
}

func (*weatherTool) Description() string {
	return "Get the current weather conditions and temperature for a city."
}

// Return the JSON schema for the tool input. The city accepts any type and
// additional properties are allowed, so models which add parameters or send
// a postcode as a number still get a reply.
func (*weatherTool) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[WeatherRequest](nil)
	if err != nil {
		return nil, err
	}
	schema.AdditionalProperties = nil
	schema.Properties[cityParameter] = &jsonschema.Schema{Description: cityDescription}
	return schema, nil
}

// Run the tool with the given input. A missing or null city is looked up
// as "unknown", and any other value by its text form.
func (w *weatherTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var call tool.Call

	// Unmarshal JSON input if provided, keeping numbers as written
	if len(bytes.TrimSpace(input)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(input))
		dec.UseNumber()
		if err := dec.Decode(&call.Parameters); err != nil {
			return nil, toolchat.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	return w.client.Describe(ctx, call.String(cityParameter, unknownLocation)), nil
}
