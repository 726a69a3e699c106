/*
openweather implements a client for the OpenWeatherMap current weather API
https://openweathermap.org/current
*/
package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	// Packages
	toolchat "github.com/mutablelogic/go-toolchat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	endpoint string
	key      string
	client   *http.Client
}

// StatusError is returned when the provider responds with a non-success
// status. Body is the response body as received.
type StatusError struct {
	Code int
	Body string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint       = "https://api.openweathermap.org/data/2.5"
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. An empty API key is allowed, in which case the
// provider rejects every lookup.
func New(apiKey string, opts ...Opt) (*Client, error) {
	o, err := apply(opts...)
	if err != nil {
		return nil, err
	}

	// Parse the endpoint
	if _, err := url.ParseRequestURI(o.endpoint); err != nil {
		return nil, toolchat.ErrBadParameter.Withf("invalid endpoint %q: %v", o.endpoint, err)
	}

	// Return the client
	return &Client{
		endpoint: o.endpoint,
		key:      apiKey,
		client:   &http.Client{Timeout: o.timeout, Transport: o.transport},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current weather for a free-text location. A
// non-success status is returned as *StatusError and a body which does not
// match the expected shape as ErrBadParameter.
func (c *Client) Current(ctx context.Context, location string) (*Weather, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	// Request -> Response
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	// Decode and validate
	return decodeWeather(body)
}

// Describe returns a one-line description of the current weather for the
// location, or a one-line description of why the lookup failed.
func (c *Client) Describe(ctx context.Context, location string) string {
	weather, err := c.Current(ctx, location)
	if err != nil {
		return describeErr(location, err)
	}
	return fmt.Sprintf("The weather in %s is %s with a temperature of %sC.", location, weather.Description(), KelvinToCelsius(weather.Temperature()))
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func describeErr(location string, err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Could not retrieve weather for %s, error: %s.", location, statusErr.Body)
	case errors.Is(err, toolchat.ErrBadParameter):
		return fmt.Sprintf("Error parsing weather data for %s: %v", location, err)
	default:
		return fmt.Sprintf("Could not retrieve weather for %s, error: %v.", location, err)
	}
}
