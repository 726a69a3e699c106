package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	logger "github.com/mutablelogic/go-toolchat/pkg/logger"
	ollama "github.com/mutablelogic/go-toolchat/pkg/ollama"
	version "github.com/mutablelogic/go-toolchat/pkg/version"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Model runtime
	Ollama `embed:"" help:"Ollama configuration"`

	// HTTP server and client options
	HTTP struct {
		Addr    string        `name:"addr" env:"TOOLCHAT_ADDR" default:":8000" help:"HTTP listen address"`
		Prefix  string        `name:"prefix" default:"/" help:"HTTP path prefix"`
		Origin  string        `name:"origin" default:"*" help:"CORS origin, or empty to disable cross-origin requests"`
		Timeout time.Duration `name:"timeout" default:"2m" help:"Timeout for requests to the model runtime"`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	log      *logger.Logger
	tracer   trace.Tracer
	execName string
}

type Ollama struct {
	OllamaHost string `name:"ollama-host" env:"OLLAMA_HOST" default:"http://localhost:11434" help:"Ollama endpoint"`
}

type CLI struct {
	Globals

	// Commands
	Run     RunCmd     `cmd:"" help:"Run the chat completion server." group:"SERVER"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Serve the weather tool over stdio." group:"SERVER"`
	Ask     AskCmd     `cmd:"" help:"Ask the chat completion server a question." group:"CLIENT"`
	Agent   AgentCmd   `cmd:"" help:"Answer a question with tools from MCP servers." group:"CLIENT"`
	Version VersionCmd `cmd:"" help:"Print the version and exit."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Tool-augmented chat with a local model runtime"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Logging goes to stderr, stdout is reserved for command output
	cli.Globals.log = logger.New(cli.Debug)
	defer cli.Globals.log.Sync()

	// Tracing uses the global provider, which is a no-op unless configured
	cli.Globals.tracer = otel.Tracer(cli.Globals.execName, trace.WithInstrumentationVersion(version.Version()))

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Runtime returns a client for the Ollama API
func (g *Globals) Runtime() (*ollama.Client, error) {
	return ollama.New(ollamaEndpoint(g.OllamaHost), g.clientOpts()...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

// ollamaEndpoint returns the API endpoint for an Ollama host
func ollamaEndpoint(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		return ollama.DefaultEndpoint
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	if strings.HasSuffix(host, "/api") {
		return host
	}
	return host + "/api"
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
