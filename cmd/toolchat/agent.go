package main

import (
	"fmt"
	"os"
	"strings"

	// Packages
	agent "github.com/mutablelogic/go-toolchat/pkg/agent"
	version "github.com/mutablelogic/go-toolchat/pkg/version"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type AgentCmd struct {
	Config   string   `name:"config" short:"c" default:"agent.yaml" help:"Agent configuration file"`
	Model    string   `name:"model" help:"Model name, overrides the configuration"`
	Question []string `arg:"" help:"Question to ask"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *AgentCmd) Run(ctx *Globals) error {
	cfg, err := agent.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Model != "" {
		cfg.Model = cmd.Model
	}

	runtime, err := ctx.Runtime()
	if err != nil {
		return fmt.Errorf("failed to create Ollama client: %w", err)
	}

	// Start the tool servers
	a, err := agent.New(ctx.ctx, runtime, cfg,
		agent.WithLogger(ctx.log.Logger),
		agent.WithTracer(ctx.tracer),
		agent.WithImplementation(ctx.execName, version.Version()),
	)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, t := range a.Tools() {
		ctx.log.Debug("tool", zap.String("name", t.Name()), zap.String("description", t.Description()))
	}

	// Ask the question and print the answer
	answer, err := a.Ask(ctx.ctx, strings.Join(cmd.Question, " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, answer)
	return err
}
