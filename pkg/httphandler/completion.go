package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi"
	relay "github.com/mutablelogic/go-toolchat/pkg/relay"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
	stream "github.com/mutablelogic/go-toolchat/pkg/stream"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /v1/chat/completions
func ChatCompletionHandler(service *relay.Service, emitter *stream.Emitter, log *zap.Logger) (string, httprequest.PathItem) {
	if log == nil {
		log = zap.NewNop()
	}
	return "/v1/chat/completions", httprequest.NewPathItem("Chat completions", "Complete a chat, as JSON or as a text/event-stream when stream is true", "Chat").
		Post(func(w http.ResponseWriter, r *http.Request) {
			var req schema.ChatCompletionRequest
			if err := httprequest.Read(r, &req); err != nil {
				_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
				return
			} else if err := req.Validate(); err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}

			// The reply is complete before any of it is sent, so a runtime
			// failure is always reported with an error status
			reply, err := service.Complete(r.Context(), req)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}

			if req.Stream {
				completionStream(w, r, emitter, reply, log)
			} else {
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), reply.Response())
			}
		}, "Complete a chat",
			openapi.WithJSONRequest(jsonschema.MustFor[schema.ChatCompletionRequest]()),
			openapi.WithJSONResponse(http.StatusOK, jsonschema.MustFor[schema.ChatCompletionResponse]()),
			openapi.WithTextStreamResponse(http.StatusOK, "Completion chunks when stream is true"),
			openapi.WithErrorResponse(http.StatusBadRequest, "The request is not valid"),
			openapi.WithErrorResponse(http.StatusBadGateway, "The model runtime failed"),
		)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// completionStream sends the reply word by word as server-sent events. Once
// the headers are sent errors can only be logged.
func completionStream(w http.ResponseWriter, r *http.Request, emitter *stream.Emitter, reply *relay.Reply, log *zap.Logger) {
	stream.SetHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	if err := stream.Write(ctx, w, emitter.Events(ctx, reply.Id, reply.Model, reply.Content)); err != nil {
		log.Warn("stream ended early", zap.String("id", reply.Id), zap.Error(err))
	}
}
