/*
agent answers questions with a model which can call tools on Model Context
Protocol servers. Each server is started as a subprocess and its tools are
offered to the model. Tool calls requested by the model are run on the
servers and the results returned to the model until it answers.
*/
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolchat "github.com/mutablelogic/go-toolchat"
	client "github.com/mutablelogic/go-toolchat/pkg/mcp/client"
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runtime is the model runtime used for chat
type Runtime interface {
	Chat(context.Context, ollama.ChatRequest) (*ollama.ChatResponse, error)
}

type Agent struct {
	opt
	runtime Runtime
	config  Config
	clients []*client.Client
	toolkit *tool.Toolkit
	tools   []*ollama.Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New connects to every server in the configuration in parallel, and
// collects their tools. Tool names must be unique across servers. The
// servers are stopped when the context is done or the agent is closed.
func New(ctx context.Context, runtime Runtime, cfg *Config, opts ...Opt) (*Agent, error) {
	if runtime == nil {
		return nil, toolchat.ErrBadParameter.With("runtime is required")
	} else if cfg == nil {
		return nil, toolchat.ErrBadParameter.With("config is required")
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o, err := apply(opts...)
	if err != nil {
		return nil, err
	}

	self := &Agent{
		opt:     *o,
		runtime: runtime,
		config:  *cfg,
	}

	// Connect to servers in parallel
	if err := self.connect(ctx); err != nil {
		return nil, errors.Join(err, self.Close())
	}

	// Collect tools
	if err := self.collect(ctx); err != nil {
		return nil, errors.Join(err, self.Close())
	}

	// Return success
	return self, nil
}

// Close terminates every server session
func (agent *Agent) Close() error {
	var result error
	for _, c := range agent.clients {
		if err := c.Close(); err != nil {
			result = errors.Join(result, err)
		}
	}
	agent.clients = nil
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns the tools offered to the model, sorted by name
func (agent *Agent) Tools() []tool.Tool {
	return agent.toolkit.Tools()
}

// Ask sends the prompt to the model and returns its answer. Tool calls are
// run and their results returned to the model until it answers without
// calling a tool. ErrMaxIterations is returned when the model is still
// calling tools after the configured number of turns.
func (agent *Agent) Ask(ctx context.Context, prompt string) (answer string, err error) {
	ctx, endSpan := otel.StartSpan(agent.tracer, ctx, "Ask",
		attribute.String("model", agent.config.Model),
	)
	defer func() { endSpan(err) }()

	if prompt == "" {
		return "", toolchat.ErrBadParameter.With("prompt is required")
	}

	// Start the conversation
	var messages []*ollama.Message
	if agent.config.System != "" {
		messages = append(messages, ollama.NewSystemMessage(agent.config.System))
	}
	messages = append(messages, ollama.NewUserMessage(prompt))

	options := ollama.Options{}
	if agent.config.Temperature != nil {
		options = options.WithTemperature(*agent.config.Temperature)
	}

	for i := 0; i < agent.config.MaxIterations; i++ {
		response, err := agent.runtime.Chat(ctx, ollama.ChatRequest{
			Model:    agent.config.Model,
			Messages: messages,
			Tools:    agent.tools,
			Options:  options,
		})
		if err != nil {
			return "", toolchat.ErrUpstream.With(err)
		}

		// Return the answer when there are no tool calls
		reply := response.Message
		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}

		// Run the tools and return the results to the model
		messages = append(messages, &reply)
		for _, call := range reply.ToolCalls {
			messages = append(messages, agent.call(ctx, call.Function))
		}
	}

	return "", toolchat.ErrMaxIterations.Withf("%d iterations", agent.config.MaxIterations)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (agent *Agent) connect(ctx context.Context) error {
	var mu sync.Mutex
	var wg errgroup.Group
	for _, name := range agent.config.ServerNames() {
		server := agent.config.Servers[name]
		wg.Go(func() error {
			transport, err := agent.transport(ctx, name, server)
			if err != nil {
				return err
			}
			c, err := client.Connect(ctx, name, agent.impl, transport)
			if err != nil {
				return err
			}
			agent.log.Debug("connected", zap.String("server", name))

			mu.Lock()
			defer mu.Unlock()
			agent.clients = append(agent.clients, c)
			return nil
		})
	}
	return wg.Wait()
}

func (agent *Agent) collect(ctx context.Context) error {
	toolkit, err := tool.NewToolkit()
	if err != nil {
		return err
	}
	for _, c := range agent.clients {
		tools, err := c.Tools(ctx)
		if err != nil {
			return err
		}
		if err := toolkit.Register(tools...); err != nil {
			return toolchat.ErrConflict.Withf("server %q: %v", c.Name(), err)
		}
	}
	definitions, err := ollama.NewTools(toolkit)
	if err != nil {
		return err
	}
	agent.toolkit = toolkit
	agent.tools = definitions
	return nil
}

// call runs a tool requested by the model. Any error is returned to the
// model as the tool result.
func (agent *Agent) call(ctx context.Context, fn ollama.ToolCallFunction) *ollama.Message {
	var input json.RawMessage
	if len(fn.Arguments) > 0 {
		data, err := json.Marshal(fn.Arguments)
		if err != nil {
			return ollama.NewToolMessage(fn.Name, err.Error())
		}
		input = data
	}

	result, err := agent.toolkit.Run(ctx, fn.Name, input)
	if err != nil {
		agent.log.Warn("tool call failed", zap.String("tool", fn.Name), zap.Error(err))
		return ollama.NewToolMessage(fn.Name, err.Error())
	}

	text := tool.ResultString(result)
	agent.log.Info("tool call", zap.String("tool", fn.Name), zap.Any("arguments", fn.Arguments), zap.String("result", text))
	return ollama.NewToolMessage(fn.Name, text)
}
