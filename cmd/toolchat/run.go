package main

import (
	"fmt"
	"time"

	// Packages
	server "github.com/mutablelogic/go-server"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	httphandler "github.com/mutablelogic/go-toolchat/pkg/httphandler"
	openweather "github.com/mutablelogic/go-toolchat/pkg/openweather"
	relay "github.com/mutablelogic/go-toolchat/pkg/relay"
	stream "github.com/mutablelogic/go-toolchat/pkg/stream"
	tool "github.com/mutablelogic/go-toolchat/pkg/tool"
	version "github.com/mutablelogic/go-toolchat/pkg/version"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCmd struct {
	Weather `embed:""`
	Prompt  string        `name:"prompt" default:"prompt.md" help:"System prompt file, read on every request"`
	Delay   time.Duration `name:"delay" default:"50ms" help:"Delay between streamed words"`
}

type Weather struct {
	WeatherAPIKey  string        `name:"weather-api-key" env:"WEATHER_API_KEY" help:"OpenWeatherMap API key"`
	WeatherTimeout time.Duration `name:"weather-timeout" default:"10s" help:"Timeout for weather requests"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCmd) Run(ctx *Globals) error {
	// Model runtime
	runtime, err := ctx.Runtime()
	if err != nil {
		return fmt.Errorf("failed to create Ollama client: %w", err)
	}

	// Weather tool
	toolkit, err := cmd.Weather.Toolkit()
	if err != nil {
		return err
	}
	if cmd.WeatherAPIKey == "" {
		ctx.log.Warn("no weather API key set, weather requests will fail")
	}

	// Relay and stream emitter
	service, err := relay.New(runtime, toolkit,
		relay.WithPromptFile(cmd.Prompt),
		relay.WithLogger(ctx.log.Logger),
		relay.WithTracer(ctx.tracer),
	)
	if err != nil {
		return err
	}
	emitter, err := stream.NewEmitter(stream.WithDelay(cmd.Delay))
	if err != nil {
		return err
	}

	// Create the server, which serves its own mux
	httpserver, err := httpserver.New(ctx.HTTP.Addr, nil)
	if err != nil {
		return err
	}

	// Create middleware
	middleware := []httprouter.HTTPMiddlewareFunc{}
	if mw, ok := any(ctx.log).(server.HTTPMiddleware); ok {
		middleware = append(middleware, mw.WrapFunc)
	}

	// Create the HTTP router on the server mux
	router, err := httprouter.NewRouter(ctx.ctx, httpserver.Router(), ctx.HTTP.Prefix, ctx.HTTP.Origin, "Mock OpenAI API", version.Version(), middleware...)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(service, emitter, router, ctx.log.Logger); err != nil {
		return err
	}

	// Run the server until the context is cancelled
	ctx.log.Info("started", zap.String("name", ctx.execName), zap.String("version", version.Version()), zap.String("addr", ctx.HTTP.Addr), zap.String("ollama", ollamaEndpoint(ctx.OllamaHost)))
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	ctx.log.Info("stopped", zap.String("name", ctx.execName))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns a toolkit with the weather tool
func (w *Weather) Toolkit() (*tool.Toolkit, error) {
	client, err := openweather.New(w.WeatherAPIKey, openweather.WithTimeout(w.WeatherTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create weather client: %w", err)
	}
	weather, err := openweather.NewTool(client)
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(weather)
}
