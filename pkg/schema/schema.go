// Package schema defines the OpenAI-compatible wire types served by the relay,
// and the validation applied to inbound requests.
package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

const (
	ObjectCompletion = "chat.completion"
	ObjectChunk      = "chat.completion.chunk"
	ObjectModel      = "model"
	ObjectList       = "list"
)

const (
	FinishReasonStop = "stop"
	OwnedByDefault   = "custom"
	CompletionPrefix = "chatcmpl-"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func Stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
