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

// GenerateRequest is a single-turn completion of a prompt
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	System  string  `json:"system,omitempty"`
	Options Options `json:"options,omitempty"`
}

// GenerateResponse is the completed reply
type GenerateResponse struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`
	Reason    string    `json:"done_reason,omitempty"`
	Metrics
}

type reqGenerate struct {
	GenerateRequest
	Stream *bool `json:"stream"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GenerateResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate returns the completed reply for a prompt, with an optional
// system prompt. The reply is not streamed.
func (ollama *Client) Generate(ctx context.Context, request GenerateRequest) (*GenerateResponse, error) {
	if request.Model == "" {
		return nil, toolchat.ErrBadParameter.With("model is required")
	}

	// Request
	req, err := client.NewJSONRequest(reqGenerate{
		GenerateRequest: request,
		Stream:          streamOff(),
	})
	if err != nil {
		return nil, err
	}

	// Response
	var response GenerateResponse
	if err := ollama.DoWithContext(ctx, req, &response, client.OptPath("generate")); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// The runtime streams by default, so stream:false is always sent
func streamOff() *bool {
	v := false
	return &v
}
