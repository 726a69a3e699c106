// Package server exposes the tools of a toolkit as a Model Context Protocol
// server, served over stdio or any other transport.
package server

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	toolchat "github.com/mutablelogic/go-toolchat"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	server  *mcpsdk.Server
	toolkit *tool.Toolkit
	log     *zap.Logger
}

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version, which exposes
// every tool in the toolkit. A nil logger disables logging.
func New(name, version string, toolkit *tool.Toolkit, log *zap.Logger) (*Server, error) {
	if name == "" {
		return nil, toolchat.ErrBadParameter.With("name is required")
	} else if toolkit == nil {
		return nil, toolchat.ErrBadParameter.With("toolkit is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	self := &Server{
		server:  mcpsdk.NewServer(&mcpsdk.Implementation{Name: name, Version: version}, nil),
		toolkit: toolkit,
		log:     log,
	}

	// Register tools
	for _, t := range toolkit.Tools() {
		schema, err := t.Schema()
		if err != nil {
			return nil, toolchat.ErrBadParameter.Withf("%s: %v", t.Name(), err)
		}
		if schema == nil {
			schema = &jsonschema.Schema{Type: "object"}
		}
		self.server.AddTool(&mcpsdk.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		}, self.handler(t.Name()))
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run serves a single client over the transport until the client
// disconnects or the context is done
func (server *Server) Run(ctx context.Context, transport mcpsdk.Transport) error {
	return server.server.Run(ctx, transport)
}

// RunStdio serves a single client over standard input and output
func (server *Server) RunStdio(ctx context.Context) error {
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect starts a session with a client over the transport and returns
// without waiting for the session to end
func (server *Server) Connect(ctx context.Context, transport mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return server.server.Connect(ctx, transport, nil)
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// handler runs the tool through the toolkit, so the input is validated
// against the schema. Tool errors are returned to the client as error
// results rather than protocol errors.
func (server *Server) handler(name string) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var input json.RawMessage
		if req.Params != nil && len(req.Params.Arguments) > 0 && string(req.Params.Arguments) != "null" {
			input = req.Params.Arguments
		}

		result, err := server.toolkit.Run(ctx, name, input)
		if err != nil {
			server.log.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
			return &mcpsdk.CallToolResult{
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		text := tool.ResultString(result)
		server.log.Debug("tool call", zap.String("tool", name), zap.String("result", text))
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		}, nil
	}
}
