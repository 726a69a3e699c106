package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	healthStatus  = "ok"
	healthMessage = "Mock OpenAI API is running"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /
func RootHandler() (string, httprequest.PathItem) {
	return "/{$}", healthPathItem("Root")
}

// Path: /health
func HealthHandler() (string, httprequest.PathItem) {
	return "/health", healthPathItem("Health")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func healthPathItem(summary string) httprequest.PathItem {
	return httprequest.NewPathItem(summary, "Report that the server is running", "Health").
		Get(health, "Health check",
			openapi.WithJSONResponse(http.StatusOK, jsonschema.MustFor[schema.HealthResponse]()),
		)
}

func health(w http.ResponseWriter, r *http.Request) {
	_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.HealthResponse{
		Status:  healthStatus,
		Message: healthMessage,
	})
}
