package schema

import (
	"slices"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a single message in a chat conversation
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant function"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// ChatCompletionRequest is the body of POST /v1/chat/completions
type ChatCompletionRequest struct {
	Model            string         `json:"model" validate:"required"`
	Messages         []Message      `json:"messages" validate:"required,dive"`
	Temperature      *float64       `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens        *uint          `json:"max_tokens,omitempty"`
	Stream           bool           `json:"stream,omitempty"`
	TopP             *float64       `json:"top_p,omitempty" validate:"omitempty,gte=0,lte=1"`
	N                *uint          `json:"n,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
}

// ChatCompletionChoice is a single completion choice
type ChatCompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason"`
}

// Usage reports token counts for a completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionResponse is the non-streaming response body
type ChatCompletionResponse struct {
	Id      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   Usage                  `json:"usage"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatCompletionRequest) String() string {
	return Stringify(r)
}

func (r ChatCompletionResponse) String() string {
	return Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LastUserMessage returns the content of the most recent user message,
// or the fallback if there is no user message.
func (r ChatCompletionRequest) LastUserMessage(fallback string) string {
	for _, message := range slices.Backward(r.Messages) {
		if message.Role == RoleUser {
			return message.Content
		}
	}
	return fallback
}

// NewUsage returns usage with the total computed
func NewUsage(prompt, completion int) Usage {
	return Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}
