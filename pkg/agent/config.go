package agent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	toolchat "github.com/mutablelogic/go-toolchat"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the agent configuration, usually read from a YAML file
type Config struct {
	Model         string                  `yaml:"model"`
	Temperature   *float64                `yaml:"temperature,omitempty"`
	MaxIterations int                     `yaml:"max_iterations,omitempty"`
	System        string                  `yaml:"system,omitempty"`
	Servers       map[string]ServerConfig `yaml:"servers"`
}

// ServerConfig describes how to start a tool server
type ServerConfig struct {
	Transport string            `yaml:"transport"`
	Command   string            `yaml:"command"`
	Args      []string          `yaml:"args,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultModel         = "llama3.2"
	DefaultMaxIterations = 5
	TransportStdio       = "stdio"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadConfig reads the YAML configuration file at path
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ReadConfig decodes a YAML configuration, applies defaults and validates
// the result. Unknown fields are an error.
func ReadConfig(r io.Reader) (*Config, error) {
	cfg := new(Config)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, toolchat.ErrBadParameter.With(err)
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate returns every problem with the configuration, joined
func (cfg *Config) Validate() error {
	var result error
	if cfg.Model == "" {
		result = errors.Join(result, toolchat.ErrBadParameter.With("model is required"))
	}
	if cfg.MaxIterations < 1 {
		result = errors.Join(result, toolchat.ErrBadParameter.Withf("max_iterations %d must be at least 1", cfg.MaxIterations))
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		result = errors.Join(result, toolchat.ErrBadParameter.Withf("temperature %v is out of range [0, 2]", *cfg.Temperature))
	}
	for _, name := range cfg.ServerNames() {
		server := cfg.Servers[name]
		if !types.IsIdentifier(name) {
			result = errors.Join(result, toolchat.ErrBadParameter.Withf("servers: invalid name %q", name))
		}
		if server.Transport != TransportStdio {
			result = errors.Join(result, toolchat.ErrNotImplemented.Withf("servers.%s: transport %q is not supported", name, server.Transport))
		}
		if server.Command == "" {
			result = errors.Join(result, toolchat.ErrBadParameter.Withf("servers.%s: command is required", name))
		}
	}
	return result
}

// ServerNames returns the names of the servers, sorted
func (cfg *Config) ServerNames() []string {
	names := make([]string, 0, len(cfg.Servers))
	for name := range cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cfg *Config) defaults() {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == nil {
		cfg.Temperature = types.Ptr(0.0)
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	for name, server := range cfg.Servers {
		if server.Transport == "" {
			server.Transport = TransportStdio
			cfg.Servers[name] = server
		}
	}
}
