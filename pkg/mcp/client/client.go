// Package client connects to Model Context Protocol servers and wraps
// their tools, so they can be offered to a model and run like local tools.
package client

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	toolchat "github.com/mutablelogic/go-toolchat"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a session with a single MCP server
type Client struct {
	name    string
	session *mcpsdk.ClientSession
}

// remoteTool is a tool which runs on the server
type remoteTool struct {
	client      *Client
	name        string
	description string
	schema      *jsonschema.Schema
}

var _ tool.Tool = (*remoteTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Connect performs the initialization handshake with the server over the
// transport. The name identifies the server in errors.
func Connect(ctx context.Context, name string, impl *mcpsdk.Implementation, transport mcpsdk.Transport) (*Client, error) {
	if transport == nil {
		return nil, toolchat.ErrBadParameter.Withf("%s: transport is required", name)
	}
	session, err := mcpsdk.NewClient(impl, nil).Connect(ctx, transport, nil)
	if err != nil {
		return nil, toolchat.ErrUpstream.Withf("%s: %v", name, err)
	}
	return &Client{name: name, session: session}, nil
}

// NewCommandTransport returns a transport which starts the command as a
// subprocess and talks to it over its standard input and output. The
// environment is added to the current environment.
func NewCommandTransport(ctx context.Context, command string, args []string, env map[string]string) (mcpsdk.Transport, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, toolchat.ErrBadParameter.With("command is required")
	}
	cmd := exec.CommandContext(ctx, command, args...)
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	return &mcpsdk.CommandTransport{Command: cmd}, nil
}

// Close terminates the session
func (c *Client) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the name of the server
func (c *Client) Name() string {
	return c.name
}

// Tools lists the tools on the server
func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	var result []tool.Tool
	for t, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, toolchat.ErrUpstream.Withf("%s: %v", c.name, err)
		}
		schema, err := toSchema(t.InputSchema)
		if err != nil {
			return nil, toolchat.ErrBadParameter.Withf("%s: tool %q: %v", c.name, t.Name, err)
		}
		result = append(result, &remoteTool{
			client:      c,
			name:        t.Name,
			description: t.Description,
			schema:      schema,
		})
	}
	return result, nil
}

// CallTool runs a tool on the server and returns its text content. A tool
// which reports an error is returned as ErrInternalServerError with the
// text content as the message.
func (c *Client) CallTool(ctx context.Context, name string, args json.RawMessage) (string, error) {
	var arguments map[string]any
	if len(args) > 0 {
		if err := json.Unmarshal(args, &arguments); err != nil {
			return "", toolchat.ErrBadParameter.Withf("%s: %v", name, err)
		}
	}

	result, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: arguments,
	})
	if err != nil {
		return "", toolchat.ErrUpstream.Withf("%s: %v", c.name, err)
	}

	// Concatenate the text content
	var text strings.Builder
	for _, content := range result.Content {
		if v, ok := content.(*mcpsdk.TextContent); ok {
			text.WriteString(v.Text)
		}
	}
	if result.IsError {
		return "", toolchat.ErrInternalServerError.With(text.String())
	}
	return text.String(), nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL

func (t *remoteTool) Name() string {
	return t.name
}

func (t *remoteTool) Description() string {
	return t.description
}

func (t *remoteTool) Schema() (*jsonschema.Schema, error) {
	return t.schema, nil
}

func (t *remoteTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	return t.client.CallTool(ctx, t.name, input)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// toSchema converts the input schema as received from the server
func toSchema(v any) (*jsonschema.Schema, error) {
	if v == nil {
		return nil, nil
	}
	if schema, ok := v.(*jsonschema.Schema); ok {
		return schema, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
