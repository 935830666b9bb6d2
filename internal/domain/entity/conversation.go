package entity

import (
	"slices"
	"strconv"
)

// Conversation is an append-only transcript. The first message is always
// the system preamble.
type Conversation struct {
	id       string
	messages []Message
}

func NewConversation(id, systemPrompt string) *Conversation {
	return &Conversation{
		id:       id,
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

func (c *Conversation) ID() string {
	return c.id
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	out := slices.Clone(c.messages)
	for i := range out {
		out[i].ToolCalls = slices.Clone(out[i].ToolCalls)
	}
	return out
}

func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

func (c *Conversation) AppendUser(content string) {
	c.append(Message{Role: RoleUser, Content: content})
}

func (c *Conversation) AppendAssistant(content string) {
	c.append(Message{Role: RoleAssistant, Content: content})
}

// NextCallID derives a correlation id from the transcript length. The
// transcript only grows, so ids never repeat within a conversation.
func (c *Conversation) NextCallID() string {
	return "call_" + strconv.Itoa(len(c.messages))
}

// AppendToolCall records the assistant's request. Content stays empty.
func (c *Conversation) AppendToolCall(call ToolCall) {
	c.append(Message{Role: RoleAssistant, ToolCalls: []ToolCall{call}})
}

func (c *Conversation) AppendToolResult(callID, name, content string) {
	c.append(Message{
		Role:       RoleTool,
		ToolCallID: callID,
		Name:       name,
		Content:    content,
	})
}

func (c *Conversation) append(msg Message) {
	c.messages = append(c.messages, msg)
}
