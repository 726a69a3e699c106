/*
relay completes OpenAI-compatible chat requests with a local model runtime.
The most recent user message is completed with a system prompt. When the reply
is a tool call naming a registered tool, the tool result replaces the reply.
*/
package relay

import (
	"context"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolchat "github.com/mutablelogic/go-toolchat"
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runtime is the model runtime used to complete prompts
type Runtime interface {
	Generate(context.Context, ollama.GenerateRequest) (*ollama.GenerateResponse, error)
	ListModels(context.Context) ([]ollama.Model, error)
}

type Service struct {
	opt
	runtime     Runtime
	interpreter *tool.Interpreter
}

// Reply is the completed reply to a chat request
type Reply struct {
	Id      string
	Model   string
	Created int64
	Content string
	Usage   schema.Usage
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPrompt = "Hello"
	idLength      = 12
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a relay over the runtime. Tool calls are executed with tools
// from the toolkit, which may be nil.
func New(runtime Runtime, toolkit *tool.Toolkit, opts ...Opt) (*Service, error) {
	if runtime == nil {
		return nil, toolchat.ErrBadParameter.With("runtime is required")
	}
	o, err := apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Service{
		opt:         *o,
		runtime:     runtime,
		interpreter: tool.NewInterpreter(toolkit, o.log),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete returns the reply to the chat request. A runtime failure is
// returned as ErrUpstream.
func (s *Service) Complete(ctx context.Context, req schema.ChatCompletionRequest) (result *Reply, err error) {
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "Complete",
		attribute.String("model", req.Model),
		attribute.Int("messages", len(req.Messages)),
	)
	defer func() { endSpan(err) }()

	// Prompt and system prompt
	prompt := req.LastUserMessage(DefaultPrompt)
	system := s.systemPrompt()

	// Generate
	response, err := s.runtime.Generate(ctx, ollama.GenerateRequest{
		Model:   req.Model,
		Prompt:  prompt,
		System:  system,
		Options: options(req),
	})
	if err != nil {
		return nil, toolchat.ErrUpstream.With(err)
	}
	s.log.Debug("runtime reply", zap.String("model", req.Model), zap.String("response", response.Response))

	// Interpret tool calls, which are logged by the interpreter
	content, executed := s.interpreter.Interpret(ctx, response.Response)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("tool_call", executed))

	// Return the reply
	return &Reply{
		Id:      NewCompletionId(),
		Model:   req.Model,
		Created: s.clock().Unix(),
		Content: content,
		Usage:   schema.NewUsage(response.PromptEvalCount, response.EvalCount),
	}, nil
}

// ListModels returns the models installed in the runtime
func (s *Service) ListModels(ctx context.Context) (result *schema.ModelList, err error) {
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "ListModels")
	defer func() { endSpan(err) }()

	models, err := s.runtime.ListModels(ctx)
	if err != nil {
		return nil, toolchat.ErrUpstream.With(err)
	}

	data := make([]schema.Model, 0, len(models))
	for _, model := range models {
		id := model.Id()
		if id == "" {
			continue
		}
		created := model.ModifiedAt
		if created.IsZero() {
			created = s.clock()
		}
		data = append(data, schema.NewModel(id, created.Unix()))
	}

	list := schema.NewModelList(data...)
	return &list, nil
}

// Response returns the reply as a non-streaming completion response
func (r *Reply) Response() schema.ChatCompletionResponse {
	stop := schema.FinishReasonStop
	return schema.ChatCompletionResponse{
		Id:      r.Id,
		Object:  schema.ObjectCompletion,
		Created: r.Created,
		Model:   r.Model,
		Choices: []schema.ChatCompletionChoice{{
			Index:        0,
			Message:      schema.Message{Role: schema.RoleAssistant, Content: r.Content},
			FinishReason: &stop,
		}},
		Usage: r.Usage,
	}
}

// NewCompletionId returns "chatcmpl-" followed by twelve hex characters
func NewCompletionId() string {
	id := uuid.New()
	return schema.CompletionPrefix + strings.ReplaceAll(id.String(), "-", "")[:idLength]
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// options returns the sampling options which were set on the request
func options(req schema.ChatCompletionRequest) ollama.Options {
	var opts ollama.Options
	if req.Temperature != nil {
		opts = opts.WithTemperature(*req.Temperature)
	}
	if req.TopP != nil {
		opts = opts.WithTopP(*req.TopP)
	}
	if req.MaxTokens != nil {
		opts = opts.WithNumPredict(*req.MaxTokens)
	}
	if req.PresencePenalty != nil {
		opts = opts.WithPresencePenalty(*req.PresencePenalty)
	}
	if req.FrequencyPenalty != nil {
		opts = opts.WithFrequencyPenalty(*req.FrequencyPenalty)
	}
	return opts.WithStop(req.Stop...)
}
