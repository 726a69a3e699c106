package httpclient

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolchat "github.com/mutablelogic/go-toolchat"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
	stream "github.com/mutablelogic/go-toolchat/pkg/stream"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// StreamFn receives each fragment of content as it arrives
type StreamFn func(text string)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ChatCompletion sends the request and returns the complete reply. The
// stream field of the request is ignored.
func (c *Client) ChatCompletion(ctx context.Context, req schema.ChatCompletionRequest) (*schema.ChatCompletionResponse, error) {
	req.Stream = false
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	var response schema.ChatCompletionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("v1", "chat", "completions")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ChatCompletionStream sends the request with streaming enabled. Each
// fragment of content is passed to fn, and the fragments are assembled
// into a single reply which is returned when the stream is done.
func (c *Client) ChatCompletionStream(ctx context.Context, req schema.ChatCompletionRequest, fn StreamFn) (*schema.ChatCompletionResponse, error) {
	req.Stream = true
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	var done bool
	response := schema.ChatCompletionResponse{
		Object: schema.ObjectCompletion,
		Choices: []schema.ChatCompletionChoice{
			{Message: schema.Message{Role: schema.RoleAssistant}},
		},
	}

	callback := func(evt client.TextStreamEvent) error {
		if strings.TrimSpace(evt.Data) == stream.Done {
			done = true
			return nil
		}
		var chunk schema.ChatCompletionChunk
		if err := evt.Json(&chunk); err != nil {
			return err
		}
		response.Id = chunk.Id
		response.Created = chunk.Created
		response.Model = chunk.Model
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
				if fn != nil {
					fn(choice.Delta.Content)
				}
			}
			if choice.FinishReason != nil {
				response.Choices[0].FinishReason = types.Ptr(*choice.FinishReason)
			}
		}
		return nil
	}

	// Pass a non-nil out so the client decodes the event stream
	var discard struct{}
	if err := c.DoWithContext(ctx, payload, &discard,
		client.OptPath("v1", "chat", "completions"),
		client.OptReqHeader("Accept", stream.ContentType),
		client.OptTextStreamCallback(callback),
		client.OptNoTimeout(),
	); err != nil {
		return nil, err
	}
	if !done {
		return nil, toolchat.ErrUpstream.With("stream ended before ", stream.Done)
	}

	// Return the assembled reply
	response.Choices[0].Message.Content = content.String()
	return &response, nil
}
