package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	httpclient "github.com/mutablelogic/go-toolchat/pkg/httpclient"
	schema "github.com/mutablelogic/go-toolchat/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type AskCmd struct {
	Model       string   `name:"model" default:"llama3.2" help:"Model name"`
	Stream      bool     `name:"stream" help:"Print the reply word by word as it arrives"`
	Temperature *float64 `name:"temperature" help:"Sampling temperature"`
	Question    []string `arg:"" help:"Question to ask"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *AskCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	req := schema.ChatCompletionRequest{
		Model:       cmd.Model,
		Temperature: cmd.Temperature,
		Messages: []schema.Message{
			{Role: schema.RoleUser, Content: strings.Join(cmd.Question, " ")},
		},
	}

	if cmd.Stream {
		_, err := client.ChatCompletionStream(ctx.ctx, req, func(text string) {
			fmt.Fprint(os.Stdout, text)
		})
		fmt.Fprintln(os.Stdout)
		return err
	}

	response, err := client.ChatCompletion(ctx.ctx, req)
	if err != nil {
		return err
	}
	for _, choice := range response.Choices {
		fmt.Fprintln(os.Stdout, choice.Message.Content)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns a client for the server at the listen address
func (g *Globals) Client() (*httpclient.Client, error) {
	endpoint, err := g.clientEndpoint()
	if err != nil {
		return nil, err
	}
	return httpclient.New(endpoint, g.clientOpts()...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clientEndpoint returns the server URL for the listen address and prefix
func (g *Globals) clientEndpoint() (string, error) {
	scheme := "http"
	host, port, err := net.SplitHostPort(g.HTTP.Addr)
	if err != nil {
		return "", err
	}

	// Default host to localhost if empty (e.g., ":8000")
	if host == "" {
		host = "localhost"
	}

	// Parse port
	portn, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return "", err
	}
	if portn == 443 {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s:%v%s", scheme, host, portn, strings.TrimSuffix(types.NormalisePath(g.HTTP.Prefix), "/")), nil
}
