package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	toolchat "github.com/mutablelogic/go-toolchat"
	client "github.com/mutablelogic/go-toolchat/pkg/mcp/client"
	server "github.com/mutablelogic/go-toolchat/pkg/mcp/server"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK TOOL

type cityTool struct{}

func (cityTool) Name() string        { return "weather" }
func (cityTool) Description() string { return "Get the weather" }
func (cityTool) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"city": {Type: "string"},
		},
	}, nil
}
func (cityTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req struct {
		City string `json:"city"`
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, err
		}
	}
	if req.City == "" {
		return nil, errors.New("city is required")
	}
	return "The weather in " + req.City + " is sunny.", nil
}

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

func connect(t *testing.T) *client.Client {
	t.Helper()
	tk, err := tool.NewToolkit(cityTool{})
	require.NoError(t, err)
	srv, err := server.New("weather", "0.0.0", tk, nil)
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := srv.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	c, err := client.Connect(ctx, "weather", &mcpsdk.Implementation{Name: "test", Version: "0.0.0"}, clientTransport)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Client_Tools(t *testing.T) {
	assert := assert.New(t)
	c := connect(t)
	assert.Equal("weather", c.Name())

	tools, err := c.Tools(context.Background())
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(tools, 1) {
		assert.Equal("weather", tools[0].Name())
		assert.Equal("Get the weather", tools[0].Description())
		schema, err := tools[0].Schema()
		assert.NoError(err)
		if assert.NotNil(schema) {
			assert.Equal("object", schema.Type)
			assert.Contains(schema.Properties, "city")
		}
	}
}

func Test_Client_RunRemoteTool(t *testing.T) {
	c := connect(t)
	tools, err := c.Tools(context.Background())
	require.NoError(t, err)

	// Remote tools run through a local toolkit like any other tool
	tk, err := tool.NewToolkit(tools...)
	require.NoError(t, err)
	result, err := tk.Run(context.Background(), "weather", map[string]any{"city": "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "The weather in Paris is sunny.", result)
}

func Test_Client_CallToolError(t *testing.T) {
	c := connect(t)

	_, err := c.CallTool(context.Background(), "weather", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, toolchat.ErrInternalServerError)
	assert.ErrorContains(t, err, "city is required")
}

func Test_Client_Close(t *testing.T) {
	c := connect(t)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func Test_NewCommandTransport(t *testing.T) {
	_, err := client.NewCommandTransport(context.Background(), " ", nil, nil)
	assert.Error(t, err)

	transport, err := client.NewCommandTransport(context.Background(), "toolchat", []string{"mcp"}, map[string]string{"WEATHER_API_KEY": "key"})
	require.NoError(t, err)
	command, ok := transport.(*mcpsdk.CommandTransport)
	if assert.True(t, ok) {
		assert.Equal(t, []string{"toolchat", "mcp"}, command.Command.Args)
		assert.Contains(t, command.Command.Env, "WEATHER_API_KEY=key")
	}
}
