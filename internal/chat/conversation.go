// Package chat holds the in-memory conversation state for one session
// and runs user turns against a model provider.
package chat

import (
	"fmt"

	"github.com/skylark-ai/skylark/internal/llm"
)

// Conversation is the ordered message history for one session. It is
// append-only: entries are never edited or removed, and the full
// history is replayed on every completion request. It lives in memory
// only and is discarded when the session ends.
type Conversation struct {
	messages []llm.ChatMessage
}

// NewConversation starts an empty session history.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AppendUser adds a user message.
func (c *Conversation) AppendUser(text string) {
	c.messages = append(c.messages, llm.ChatMessage{
		Role:    llm.RoleUser,
		Content: text,
	})
}

// AppendAssistantText adds a plain assistant answer.
func (c *Conversation) AppendAssistantText(text string) {
	c.messages = append(c.messages, llm.ChatMessage{
		Role:    llm.RoleAssistant,
		Content: text,
	})
}

// AppendAssistantToolCall adds the assistant message requesting one
// tool invocation. Its content stays empty; the wire layer renders it
// as null next to the call list.
func (c *Conversation) AppendAssistantToolCall(call llm.ToolCall) {
	c.messages = append(c.messages, llm.ChatMessage{
		Role:      llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{call},
	})
}

// AppendToolResult adds the result message for an earlier tool call.
// The id must reference a tool call already present in the history.
func (c *Conversation) AppendToolResult(toolCallID, content string) error {
	if !c.hasToolCall(toolCallID) {
		return fmt.Errorf("tool result references unknown tool call id %q", toolCallID)
	}
	c.messages = append(c.messages, llm.ChatMessage{
		Role:       llm.RoleTool,
		ToolCallID: toolCallID,
		Content:    content,
	})
	return nil
}

func (c *Conversation) hasToolCall(id string) bool {
	if id == "" {
		return false
	}
	for _, msg := range c.messages {
		for _, call := range msg.ToolCalls {
			if call.ID == id {
				return true
			}
		}
	}
	return false
}

// Messages returns a copy of the history in append order.
func (c *Conversation) Messages() []llm.ChatMessage {
	return append([]llm.ChatMessage{}, c.messages...)
}

// Len reports the number of messages in the session.
func (c *Conversation) Len() int {
	return len(c.messages)
}
