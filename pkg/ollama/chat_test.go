package ollama_test

import (
	"context"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	assert "github.com/stretchr/testify/assert"
)

const chatToolResponse = `{
	"model": "llama3.2",
	"created_at": "2024-01-01T00:00:00Z",
	"message": {
		"role": "assistant",
		"content": "",
		"tool_calls": [
			{"function": {"name": "weather", "arguments": {"city": "Paris"}}}
		]
	},
	"done": true,
	"done_reason": "stop"
}`

func Test_Chat_ToolCalls(t *testing.T) {
	assert := assert.New(t)
	var requests []request
	client := runtime(t, chatToolResponse, &requests)

	response, err := client.Chat(context.Background(), ollama.ChatRequest{
		Model: "llama3.2",
		Messages: []*ollama.Message{
			ollama.NewUserMessage("What is the weather in Paris?"),
		},
		Tools: []*ollama.Tool{{
			Type: "function",
			Function: ollama.ToolFunction{
				Name:        "weather",
				Description: "Get the weather",
				Parameters:  &jsonschema.Schema{Type: "object"},
			},
		}},
		Options: ollama.Options{}.WithTemperature(0),
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(ollama.RoleAssistant, response.Message.Role)
	if assert.Len(response.Message.ToolCalls, 1) {
		assert.Equal("weather", response.Message.ToolCalls[0].Function.Name)
		assert.Equal(map[string]any{"city": "Paris"}, response.Message.ToolCalls[0].Function.Arguments)
	}

	if assert.Len(requests, 1) {
		body := requests[0].Body
		assert.Equal("/api/chat", requests[0].Path)
		assert.Equal(false, body["stream"])
		assert.Equal(map[string]any{"temperature": float64(0)}, body["options"])
		assert.Len(body["tools"], 1)
		assert.Len(body["messages"], 1)
	}
}

func Test_Chat_ToolResult(t *testing.T) {
	assert := assert.New(t)
	var requests []request
	client := runtime(t, `{"model":"llama3.2","message":{"role":"assistant","content":"It is sunny."},"done":true}`, &requests)

	response, err := client.Chat(context.Background(), ollama.ChatRequest{
		Model: "llama3.2",
		Messages: []*ollama.Message{
			ollama.NewUserMessage("What is the weather in Paris?"),
			ollama.NewToolMessage("weather", "The weather in Paris is sunny."),
		},
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("It is sunny.", response.Message.Content)
	assert.Empty(response.Message.ToolCalls)

	if assert.Len(requests, 1) {
		messages := requests[0].Body["messages"].([]any)
		assert.Equal(map[string]any{
			"role":      "tool",
			"content":   "The weather in Paris is sunny.",
			"tool_name": "weather",
		}, messages[1])
	}
}

func Test_Chat_NoMessages(t *testing.T) {
	client := runtime(t, chatToolResponse, nil)
	_, err := client.Chat(context.Background(), ollama.ChatRequest{Model: "llama3.2"})
	assert.Error(t, err)
}
