package llm

import (
	"context"
	"fmt"
)

// Provider sends chat requests to an LLM backend.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Role is the author role for a chat message.
type Role string

const (
	// RoleUser is a user-authored message.
	RoleUser Role = "user"
	// RoleAssistant is an assistant-authored message.
	RoleAssistant Role = "assistant"
	// RoleTool is a tool-result message addressed to the model.
	RoleTool Role = "tool"
)

// ChatMessage is a single message in model conversation history.
type ChatMessage struct {
	Role       Role
	Content    string
	ToolCallID string
	ToolCalls  []ToolCall
}

// ToolDefinition describes a callable tool exposed to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
	Strict      bool
}

// ToolCall is a model request to execute a tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// TokenUsage reports provider token accounting for one response.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ChatRequest is the provider-agnostic request payload.
type ChatRequest struct {
	SystemPrompt string
	Messages     []ChatMessage
	Tools        []ToolDefinition
	MaxTokens    int
}

// Reply is the model's answer for one completion. It is a closed
// two-case variant: the model either answered in text or requested
// tool calls, never both and never neither.
type Reply interface {
	isReply()
}

// TextReply is a direct natural-language answer.
type TextReply struct {
	Content string
}

// ToolCallReply is a request to execute one or more tools. Calls is
// never empty.
type ToolCallReply struct {
	Calls []ToolCall
}

func (TextReply) isReply()     {}
func (ToolCallReply) isReply() {}

// ChatResponse is the provider-agnostic response payload.
type ChatResponse struct {
	Reply Reply
	Usage TokenUsage
}

// newReply classifies a raw completion. Tool calls take precedence
// over any text the model emitted alongside them; a completion with
// neither is an error.
func newReply(content string, calls []ToolCall) (Reply, error) {
	if len(calls) > 0 {
		return ToolCallReply{Calls: calls}, nil
	}
	if content != "" {
		return TextReply{Content: content}, nil
	}
	return nil, fmt.Errorf("model returned an empty completion")
}
