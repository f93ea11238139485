package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skylark-ai/skylark/internal/llm"
	"github.com/skylark-ai/skylark/internal/logging"
	"github.com/skylark-ai/skylark/internal/tools"
)

// DefaultSystemPrompt is used when configuration leaves the prompt blank.
const DefaultSystemPrompt = "You are Skylark, a concise assistant. Use the available tools when a question needs live data, and answer in plain language."

// Runner executes user turns against one conversation. A turn is one
// completion, at most one tool round, then a final text answer; the
// model asking for a second round is an error, not a loop.
type Runner struct {
	provider     llm.Provider
	registry     *tools.Registry
	systemPrompt string
	maxTokens    int
	conv         *Conversation
}

// NewRunner creates a session-scoped turn runner.
func NewRunner(provider llm.Provider, registry *tools.Registry, systemPrompt string, maxTokens int) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Runner{
		provider:     provider,
		registry:     registry,
		systemPrompt: systemPrompt,
		maxTokens:    maxTokens,
		conv:         NewConversation(),
	}, nil
}

// Conversation exposes the session history.
func (r *Runner) Conversation() *Conversation {
	return r.conv
}

// Reset discards the session history and starts a new one.
func (r *Runner) Reset() {
	r.conv = NewConversation()
}

// Run executes one user turn and returns the assistant's final text.
func (r *Runner) Run(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("user message is empty")
	}

	r.conv.AppendUser(text)

	resp, err := r.complete(ctx)
	if err != nil {
		return "", err
	}

	switch reply := resp.Reply.(type) {
	case llm.TextReply:
		r.conv.AppendAssistantText(reply.Content)
		return reply.Content, nil
	case llm.ToolCallReply:
		return r.runToolRound(ctx, reply)
	default:
		return "", fmt.Errorf("unexpected model reply type %T", resp.Reply)
	}
}

// runToolRound executes the first requested call, folds the assistant
// tool-call message and its result into the history, and asks the
// model once more for a text answer.
func (r *Runner) runToolRound(ctx context.Context, reply llm.ToolCallReply) (string, error) {
	call := reply.Calls[0]
	if len(reply.Calls) > 1 {
		logging.Logger().Warn(
			"ignoring extra simultaneous tool calls",
			"tool", call.Name,
			"ignored", len(reply.Calls)-1,
		)
	}

	r.conv.AppendAssistantToolCall(call)

	startedAt := time.Now()
	logging.Logger().Info(
		"tool call start",
		"tool", call.Name,
		"tool_call_id", call.ID,
		"arguments", call.Arguments,
	)
	output, err := r.registry.Dispatch(ctx, call)
	if err != nil {
		return "", err
	}
	logging.Logger().Info(
		"tool call complete",
		"tool", call.Name,
		"tool_call_id", call.ID,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	if err := r.conv.AppendToolResult(call.ID, output); err != nil {
		return "", err
	}

	resp, err := r.complete(ctx)
	if err != nil {
		return "", err
	}
	text, ok := resp.Reply.(llm.TextReply)
	if !ok {
		return "", fmt.Errorf("model requested another tool call; a turn runs a single tool round")
	}
	r.conv.AppendAssistantText(text.Content)
	return text.Content, nil
}

func (r *Runner) complete(ctx context.Context) (*llm.ChatResponse, error) {
	toolDefs := r.registry.Definitions()
	logging.Logger().Debug(
		"chat completion request",
		"message_count", r.conv.Len(),
		"tool_count", len(toolDefs),
	)

	resp, err := r.provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: r.systemPrompt,
		Messages:     r.conv.Messages(),
		Tools:        toolDefs,
		MaxTokens:    r.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	logging.Logger().Debug(
		"chat completion response",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return resp, nil
}
