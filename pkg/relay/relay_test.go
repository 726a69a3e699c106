package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolchat "github.com/mutablelogic/go-toolchat"
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	relay "github.com/mutablelogic/go-toolchat/pkg/relay"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	observer "go.uber.org/zap/zaptest/observer"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK RUNTIME

type mockRuntime struct {
	response string
	models   []ollama.Model
	err      error
	requests []ollama.GenerateRequest
}

var _ relay.Runtime = (*mockRuntime)(nil)

func (m *mockRuntime) Generate(_ context.Context, req ollama.GenerateRequest) (*ollama.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &ollama.GenerateResponse{
		Model:    req.Model,
		Response: m.response,
		Done:     true,
		Metrics:  ollama.Metrics{PromptEvalCount: 10, EvalCount: 5},
	}, nil
}

func (m *mockRuntime) ListModels(context.Context) ([]ollama.Model, error) {
	return m.models, m.err
}

///////////////////////////////////////////////////////////////////////////////
// MOCK TOOL

type weatherTool struct {
	city string
}

var _ tool.Tool = (*weatherTool)(nil)

func (*weatherTool) Name() string                        { return "weather" }
func (*weatherTool) Description() string                 { return "weather" }
func (*weatherTool) Schema() (*jsonschema.Schema, error) { return nil, nil }

func (w *weatherTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	w.city = string(input)
	return "The weather in London is mild.", nil
}

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

var epoch = time.Unix(1700000000, 0)

func newRelay(t *testing.T, runtime *mockRuntime, opts ...relay.Opt) *relay.Service {
	t.Helper()
	opts = append([]relay.Opt{
		relay.WithPromptFile(""),
		relay.WithClock(func() time.Time { return epoch }),
	}, opts...)
	service, err := relay.New(runtime, nil, opts...)
	require.NoError(t, err)
	return service
}

func request(messages ...schema.Message) schema.ChatCompletionRequest {
	return schema.ChatCompletionRequest{Model: "llama3.2", Messages: messages}
}

// recordingTracer hands out a single span which keeps its attributes
type recordingTracer struct {
	noop.Tracer
	span *recordingSpan
}

type recordingSpan struct {
	noop.Span
	attrs []attribute.KeyValue
}

func (t *recordingTracer) Start(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return trace.ContextWithSpan(ctx, t.span), t.span
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Complete_PlainText(t *testing.T) {
	assert := assert.New(t)
	runtime := &mockRuntime{response: "Hi, how can I help?"}
	service := newRelay(t, runtime)

	reply, err := service.Complete(context.Background(), request(
		schema.Message{Role: "system", Content: "ignored"},
		schema.Message{Role: "user", Content: "first"},
		schema.Message{Role: "assistant", Content: "answer"},
		schema.Message{Role: "user", Content: "second"},
	))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("Hi, how can I help?", reply.Content)
	assert.Equal("llama3.2", reply.Model)
	assert.Equal(epoch.Unix(), reply.Created)
	assert.Regexp(regexp.MustCompile(`^chatcmpl-[0-9a-f]{12}$`), reply.Id)
	assert.Equal(schema.NewUsage(10, 5), reply.Usage)

	if assert.Len(runtime.requests, 1) {
		assert.Equal("second", runtime.requests[0].Prompt)
		assert.Equal("", runtime.requests[0].System)
		assert.Nil(runtime.requests[0].Options)
	}
}

func Test_Complete_NoUserMessage(t *testing.T) {
	runtime := &mockRuntime{response: "Hello!"}
	service := newRelay(t, runtime)

	_, err := service.Complete(context.Background(), request(schema.Message{Role: "system", Content: "Be nice"}))
	require.NoError(t, err)
	assert.Equal(t, "Hello", runtime.requests[0].Prompt)
}

func Test_Complete_Options(t *testing.T) {
	runtime := &mockRuntime{response: "ok"}
	service := newRelay(t, runtime)

	req := request(schema.Message{Role: "user", Content: "hi"})
	req.Temperature = types.Ptr(0.2)
	req.MaxTokens = types.Ptr(uint(100))
	req.Stop = []string{"END"}
	_, err := service.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ollama.Options{
		"temperature": 0.2,
		"num_predict": uint(100),
		"stop":        []string{"END"},
	}, runtime.requests[0].Options)
}

func Test_Complete_SystemPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("You are a weather bot."), 0o600))

	runtime := &mockRuntime{response: "ok"}
	service := newRelay(t, runtime, relay.WithPromptFile(path))

	_, err := service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, "You are a weather bot.", runtime.requests[0].System)

	// The file is read again on the next request
	require.NoError(t, os.WriteFile(path, []byte("You are a poet."), 0o600))
	_, err = service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, "You are a poet.", runtime.requests[1].System)
}

func Test_Complete_MissingPrompt(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	runtime := &mockRuntime{response: "ok"}
	service := newRelay(t, runtime,
		relay.WithPromptFile(filepath.Join(t.TempDir(), "missing.md")),
		relay.WithLogger(zap.New(core)),
	)

	_, err := service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, "", runtime.requests[0].System)
	assert.Equal(t, 1, logs.FilterMessage("system prompt not loaded").Len())
}

func Test_Complete_ToolCall(t *testing.T) {
	assert := assert.New(t)
	weather := &weatherTool{}
	tk, err := tool.NewToolkit(weather)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	tracer := &recordingTracer{span: &recordingSpan{}}
	runtime := &mockRuntime{response: `{"tool":"weather","parameters":{"city":"London"}}`}
	service, err := relay.New(runtime, tk,
		relay.WithPromptFile(""),
		relay.WithLogger(zap.New(core)),
		relay.WithTracer(tracer),
	)
	require.NoError(t, err)

	reply, err := service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "weather?"}))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("The weather in London is mild.", reply.Content)
	assert.JSONEq(`{"city":"London"}`, weather.city)

	// The execution is logged once and recorded on the span
	assert.Equal(1, logs.Len())
	assert.Equal(1, logs.FilterMessage("tool call executed").Len())
	assert.Contains(tracer.span.attrs, attribute.Bool("tool_call", true))
}

func Test_Complete_UnknownTool(t *testing.T) {
	raw := `{"tool":"calculator","parameters":{"expression":"1+1"}}`
	runtime := &mockRuntime{response: raw}
	service := newRelay(t, runtime)

	reply, err := service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "sum"}))
	require.NoError(t, err)
	assert.Equal(t, raw, reply.Content)
}

func Test_Complete_RuntimeError(t *testing.T) {
	runtime := &mockRuntime{err: errors.New("connection refused")}
	service := newRelay(t, runtime)

	_, err := service.Complete(context.Background(), request(schema.Message{Role: "user", Content: "hi"}))
	assert.ErrorIs(t, err, toolchat.ErrUpstream)
	assert.ErrorContains(t, err, "connection refused")
}

func Test_Reply_Response(t *testing.T) {
	assert := assert.New(t)
	reply := relay.Reply{Id: "chatcmpl-0123456789ab", Model: "llama3.2", Created: 1, Content: "hello", Usage: schema.NewUsage(1, 2)}

	response := reply.Response()
	assert.Equal(schema.ObjectCompletion, response.Object)
	if assert.Len(response.Choices, 1) {
		assert.Equal("assistant", response.Choices[0].Message.Role)
		assert.Equal("hello", response.Choices[0].Message.Content)
		assert.Equal("stop", *response.Choices[0].FinishReason)
	}
	assert.Equal(3, response.Usage.TotalTokens)
}

func Test_ListModels(t *testing.T) {
	assert := assert.New(t)
	runtime := &mockRuntime{models: []ollama.Model{
		{Name: "llama3.2:latest", Model: "llama3.2:latest", ModifiedAt: time.Unix(1600000000, 0)},
		{Name: "qwen:0.5b"},
		{},
	}}
	service := newRelay(t, runtime)

	list, err := service.ListModels(context.Background())
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("list", list.Object)
	assert.Equal([]schema.Model{
		{Id: "llama3.2:latest", Object: "model", Created: 1600000000, OwnedBy: "custom"},
		{Id: "qwen:0.5b", Object: "model", Created: epoch.Unix(), OwnedBy: "custom"},
	}, list.Data)
}

func Test_ListModels_Error(t *testing.T) {
	service := newRelay(t, &mockRuntime{err: errors.New("down")})
	_, err := service.ListModels(context.Background())
	assert.ErrorIs(t, err, toolchat.ErrUpstream)
}

func Test_NewCompletionId(t *testing.T) {
	a, b := relay.NewCompletionId(), relay.NewCompletionId()
	assert.Regexp(t, `^chatcmpl-[0-9a-f]{12}$`, a)
	assert.NotEqual(t, a, b)
}

func Test_New_NilRuntime(t *testing.T) {
	_, err := relay.New(nil, nil)
	assert.Error(t, err)
}
