package ollama

import (
	"context"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Model is an installed model
type Model struct {
	Name       string       `json:"name"`
	Model      string       `json:"model,omitempty"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size,omitempty"`
	Digest     string       `json:"digest,omitempty"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails are the details of the model
type ModelDetails struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// listModelsResponse represents the API response for listing models
type listModelsResponse struct {
	Data []Model `json:"models"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Id returns the model tag, such as "llama3.2:latest", or the name when
// the runtime does not report the tag
func (m Model) Id() string {
	if m.Model != "" {
		return m.Model
	}
	return m.Name
}

// List all installed models
func (ollama *Client) ListModels(ctx context.Context) ([]Model, error) {
	// Send the request
	var response listModelsResponse
	if err := ollama.DoWithContext(ctx, nil, &response, client.OptPath("tags")); err != nil {
		return nil, err
	}

	// Return models
	if response.Data == nil {
		return []Model{}, nil
	}
	return response.Data, nil
}
