package entity

import "encoding/json"

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is one entry of a transcript. An assistant message carries either
// Content or ToolCalls; a tool message carries ToolCallID, Name and Content.
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall is a tool invocation requested by the model. Arguments keeps the
// raw text the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ParseArguments decodes the raw arguments of a tool call into an object.
// A JSON object is used as is, a JSON string holding an object is unwrapped
// once. Anything else yields an empty object and ok=false.
func (tc ToolCall) ParseArguments() (args map[string]any, ok bool) {
	raw := []byte(tc.Arguments)

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj, true
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &obj); err == nil && obj != nil {
			return obj, true
		}
	}

	return map[string]any{}, false
}
