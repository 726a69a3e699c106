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
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /v1/models
func ModelListHandler(service *relay.Service) (string, httprequest.PathItem) {
	return "/v1/models", httprequest.NewPathItem("Models", "Models installed in the model runtime", "Models").
		Get(func(w http.ResponseWriter, r *http.Request) {
			resp, err := service.ListModels(r.Context())
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		}, "List models",
			openapi.WithJSONResponse(http.StatusOK, jsonschema.MustFor[schema.ModelList]()),
			openapi.WithErrorResponse(http.StatusBadGateway, "The model runtime could not be reached"),
		)
}
