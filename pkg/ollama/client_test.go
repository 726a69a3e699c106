package ollama_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// request is a request received by the fake runtime
type request struct {
	Method string
	Path   string
	Body   map[string]any
}

// runtime returns a client for a fake runtime which responds to every
// request with the response, and records the requests received
func runtime(t *testing.T, response string, requests *[]request) *ollama.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{Method: r.Method, Path: r.URL.Path}
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			if err := json.Unmarshal(data, &req.Body); err != nil {
				t.Errorf("invalid request body: %v", err)
			}
		}
		if requests != nil {
			*requests = append(*requests, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client, err := ollama.New(srv.URL + "/api")
	require.NoError(t, err)
	return client
}

// failing returns a client for a fake runtime which always fails
func failing(t *testing.T, status int) *ollama.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"model \"missing\" not found, try pulling it first"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := ollama.New(srv.URL + "/api")
	require.NoError(t, err)
	return client
}
