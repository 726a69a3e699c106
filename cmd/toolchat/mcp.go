package main

import (
	// Packages
	server "github.com/mutablelogic/go-toolchat/pkg/mcp/server"
	version "github.com/mutablelogic/go-toolchat/pkg/version"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCmd struct {
	Weather `embed:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPCmd) Run(ctx *Globals) error {
	toolkit, err := cmd.Weather.Toolkit()
	if err != nil {
		return err
	}

	// Create MCP server
	server, err := server.New(ctx.execName, version.Version(), toolkit, ctx.log.Logger)
	if err != nil {
		return err
	}

	// Run the server on stdio until the client disconnects
	ctx.log.Info("starting MCP server", zap.Stringer("tools", toolkit))
	return server.RunStdio(ctx.ctx)
}
