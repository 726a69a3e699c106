package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Delta is the incremental content of a streaming fragment. The start
// fragment carries only the role, word fragments only content and the stop
// fragment neither.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// StreamChoice is a single streaming choice
type StreamChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// ChatCompletionChunk is one fragment of a streamed completion
type ChatCompletionChunk struct {
	Id      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c ChatCompletionChunk) String() string {
	return Stringify(c)
}
