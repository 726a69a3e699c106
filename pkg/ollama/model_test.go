package ollama_test

import (
	"context"
	"net/http"
	"testing"

	// Packages
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	assert "github.com/stretchr/testify/assert"
)

func Test_ListModels_001(t *testing.T) {
	assert := assert.New(t)
	var requests []request
	client := runtime(t, `{"models":[
		{"name":"llama3.2:latest","model":"llama3.2:latest","modified_at":"2024-10-01T12:00:00Z","size":2019393189,"details":{"family":"llama","parameter_size":"3.2B"}},
		{"name":"qwen:0.5b","model":"qwen:0.5b","modified_at":"2024-09-01T12:00:00Z","size":394998579}
	]}`, &requests)

	models, err := client.ListModels(context.Background())
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(models, 2) {
		assert.Equal("llama3.2:latest", models[0].Name)
		assert.Equal("llama", models[0].Details.Family)
		assert.Equal(int64(1727784000), models[0].ModifiedAt.Unix())
		assert.Equal("qwen:0.5b", models[1].Name)
	}
	if assert.Len(requests, 1) {
		assert.Equal(http.MethodGet, requests[0].Method)
		assert.Equal("/api/tags", requests[0].Path)
	}
}

func Test_ListModels_Empty(t *testing.T) {
	client := runtime(t, `{"models":[]}`, nil)
	models, err := client.ListModels(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, models)
	assert.Empty(t, models)
}

func Test_Model_Id(t *testing.T) {
	assert.Equal(t, "llama3.2:latest", ollama.Model{Name: "llama3.2", Model: "llama3.2:latest"}.Id())
	assert.Equal(t, "llama3.2", ollama.Model{Name: "llama3.2"}.Id())
	assert.Equal(t, "", ollama.Model{}.Id())
}
