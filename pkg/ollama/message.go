package ollama

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one turn of a chat
type Message struct {
	Role      string     `json:"role"` // system, user, assistant, tool
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	ToolName  string     `json:"tool_name,omitempty"` // when role is tool
}

// ToolCall is a request by the model to run a tool
type ToolCall struct {
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Index     int            `json:"index,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewToolMessage returns the result of running a tool
func NewToolMessage(name, content string) *Message {
	return &Message{Role: RoleTool, Content: content, ToolName: name}
}
