package openweather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	// Packages
	openweather "github.com/mutablelogic/go-toolchat/pkg/openweather"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// fixture serves the response body with the status code, and records the
// query string of the last request
func fixture(t *testing.T, status int, body []byte, query *string) *openweather.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if query != nil {
			*query = r.URL.RawQuery
		}
		assert.Equal(t, "/weather", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	client, err := openweather.New("test-key", openweather.WithEndpoint(srv.URL))
	require.NoError(t, err)
	return client
}

func londonFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/openweather.json")
	require.NoError(t, err)
	return data
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Describe_London(t *testing.T) {
	var query string
	client := fixture(t, http.StatusOK, londonFixture(t), &query)

	text := client.Describe(context.Background(), "London")
	assert.Equal(t, "The weather in London is scattered clouds with a temperature of 6.9C.", text)
	assert.Equal(t, "appid=test-key&q=London", query)
}

func Test_Current_London(t *testing.T) {
	assert := assert.New(t)
	client := fixture(t, http.StatusOK, londonFixture(t), nil)

	weather, err := client.Current(context.Background(), "London")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("scattered clouds", weather.Description())
	assert.InDelta(280.05, weather.Temperature(), 1e-9)
	assert.Equal(84, *weather.Main.Humidity)
	assert.Equal(1012, *weather.Main.Pressure)
}

func Test_Describe_NotFound(t *testing.T) {
	body := `{"cod":"404","message":"city not found"}`
	client := fixture(t, http.StatusNotFound, []byte(body), nil)

	text := client.Describe(context.Background(), "Atlantis")
	assert.Equal(t, "Could not retrieve weather for Atlantis, error: "+body+".", text)
	assert.Contains(t, text, "Atlantis")
	assert.Contains(t, text, body)
}

func Test_Current_StatusError(t *testing.T) {
	client := fixture(t, http.StatusUnauthorized, []byte(`{"cod":401}`), nil)

	_, err := client.Current(context.Background(), "London")
	var statusErr *openweather.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, `{"cod":401}`, statusErr.Body)
}

func Test_Describe_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"empty weather list", `{"weather":[],"main":{"temp":280,"feels_like":280,"temp_min":280,"temp_max":280,"pressure":1000,"humidity":50}}`},
		{"missing main", `{"weather":[{"description":"clear sky","main":"Clear"}]}`},
		{"missing description", `{"weather":[{"main":"Clear"}],"main":{"temp":280,"feels_like":280,"temp_min":280,"temp_max":280,"pressure":1000,"humidity":50}}`},
		{"missing humidity", `{"weather":[{"description":"clear sky","main":"Clear"}],"main":{"temp":280,"feels_like":280,"temp_min":280,"temp_max":280,"pressure":1000}}`},
		{"fractional pressure", `{"weather":[{"description":"clear sky","main":"Clear"}],"main":{"temp":280,"feels_like":280,"temp_min":280,"temp_max":280,"pressure":1000.5,"humidity":50}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := fixture(t, http.StatusOK, []byte(tt.body), nil)
			text := client.Describe(context.Background(), "Paris")
			assert.Regexp(t, `^Error parsing weather data for Paris: .+`, text)
		})
	}
}

func Test_Describe_ZeroKelvin(t *testing.T) {
	body := `{"weather":[{"description":"very cold","main":"Cold"}],"main":{"temp":0,"feels_like":0,"temp_min":0,"temp_max":0,"pressure":0,"humidity":0}}`
	client := fixture(t, http.StatusOK, []byte(body), nil)

	text := client.Describe(context.Background(), "Nowhere")
	assert.Equal(t, "The weather in Nowhere is very cold with a temperature of -273.1C.", text)
}

func Test_Describe_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	client, err := openweather.New("test-key", openweather.WithEndpoint(endpoint))
	require.NoError(t, err)

	text := client.Describe(context.Background(), "London")
	assert.Regexp(t, `^Could not retrieve weather for London, error: .+\.$`, text)
}

func Test_KelvinToCelsius(t *testing.T) {
	tests := []struct {
		kelvin float64
		expect string
	}{
		{280.05, "6.9"},
		{273.15, "0.0"},
		{300, "26.9"},
		{250, "-23.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, openweather.KelvinToCelsius(tt.kelvin))
	}
}

func Test_New_InvalidEndpoint(t *testing.T) {
	_, err := openweather.New("key", openweather.WithEndpoint("not a url"))
	assert.Error(t, err)

	_, err = openweather.New("key", openweather.WithEndpoint(""))
	assert.Error(t, err)
}
