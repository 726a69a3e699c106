package ollama

import (
	"encoding/json"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Options are model sampling options. Only options which are set are sent,
// so the runtime defaults apply to the rest.
type Options map[string]any

// Metrics are reported by the runtime when a reply is done
type Metrics struct {
	TotalDuration      time.Duration `json:"total_duration,omitempty"`
	LoadDuration       time.Duration `json:"load_duration,omitempty"`
	PromptEvalCount    int           `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration time.Duration `json:"prompt_eval_duration,omitempty"`
	EvalCount          int           `json:"eval_count,omitempty"`
	EvalDuration       time.Duration `json:"eval_duration,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (o Options) WithTemperature(v float64) Options {
	return o.with("temperature", v)
}

func (o Options) WithTopP(v float64) Options {
	return o.with("top_p", v)
}

// WithNumPredict sets the maximum number of tokens to generate
func (o Options) WithNumPredict(v uint) Options {
	return o.with("num_predict", v)
}

func (o Options) WithStop(v ...string) Options {
	if len(v) == 0 {
		return o
	}
	return o.with("stop", v)
}

func (o Options) WithPresencePenalty(v float64) Options {
	return o.with("presence_penalty", v)
}

func (o Options) WithFrequencyPenalty(v float64) Options {
	return o.with("frequency_penalty", v)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Metrics) String() string {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (o Options) with(key string, value any) Options {
	if o == nil {
		o = make(Options)
	}
	o[key] = value
	return o
}
