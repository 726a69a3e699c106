package httpclient

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns the models installed in the model runtime
func (c *Client) ListModels(ctx context.Context) (*schema.ModelList, error) {
	var response schema.ModelList
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("v1", "models")); err != nil {
		return nil, err
	}
	return &response, nil
}
