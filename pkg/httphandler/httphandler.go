package httphandler

import (
	"errors"
	"net/http"

	// Package
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	toolchat "github.com/mutablelogic/go-toolchat"
	relay "github.com/mutablelogic/go-toolchat/pkg/relay"
	stream "github.com/mutablelogic/go-toolchat/pkg/stream"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is satisfied by *httprouter.Router
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the health, model and chat completion handlers
// with the router. A nil logger disables logging of stream errors.
func RegisterHandlers(service *relay.Service, emitter *stream.Emitter, router Router, log *zap.Logger) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, pathitem httprequest.PathItem) {
		result = errors.Join(result, router.RegisterPath(path, nil, pathitem))
	}

	// Register handlers
	register(RootHandler())
	register(HealthHandler())
	register(ModelListHandler(service))
	register(ChatCompletionHandler(service, emitter, log))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a toolchat.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var toolchatErr toolchat.Err
	if !errors.As(err, &toolchatErr) {
		return err
	}
	switch toolchatErr {
	case toolchat.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case toolchat.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case toolchat.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case toolchat.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case toolchat.ErrUpstream:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
