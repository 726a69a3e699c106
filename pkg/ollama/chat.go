package ollama

import (
	"context"
	"encoding/json"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolchat "github.com/mutablelogic/go-toolchat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest is a multi-turn chat, optionally offering tools to the model
type ChatRequest struct {
	Model    string     `json:"model"`
	Messages []*Message `json:"messages"`
	Tools    []*Tool    `json:"tools,omitempty"`
	Options  Options    `json:"options,omitempty"`
}

// ChatResponse is the completed assistant message
type ChatResponse struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Message   Message   `json:"message"`
	Done      bool      `json:"done"`
	Reason    string    `json:"done_reason,omitempty"`
	Metrics
}

type reqChat struct {
	ChatRequest
	Stream *bool `json:"stream"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat returns the next assistant message for the conversation. The message
// may carry tool calls instead of content. The reply is not streamed.
func (ollama *Client) Chat(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	if request.Model == "" {
		return nil, toolchat.ErrBadParameter.With("model is required")
	} else if len(request.Messages) == 0 {
		return nil, toolchat.ErrBadParameter.With("at least one message is required")
	}

	// Request
	req, err := client.NewJSONRequest(reqChat{
		ChatRequest: request,
		Stream:      streamOff(),
	})
	if err != nil {
		return nil, err
	}

	// Response
	var response ChatResponse
	if err := ollama.DoWithContext(ctx, req, &response, client.OptPath("chat")); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}
