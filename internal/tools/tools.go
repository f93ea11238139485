// Package tools defines the Tool interface and the name-keyed Registry
// the turn runner dispatches model tool calls through.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/skylark-ai/skylark/internal/llm"
)

// Tool is an executable action exposed to the model. Execute receives
// the model-supplied arguments as a raw JSON string and validates them
// itself.
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]any
	Execute(ctx context.Context, arguments string) (string, error)
}

// Registry stores tools by unique name.
type Registry struct {
	byName map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Tool)}
}

// Register adds a tool by unique name.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return errors.New("tool cannot be nil")
	}
	name := tool.Name()
	if name == "" {
		return errors.New("tool name cannot be empty")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.byName[name] = tool
	return nil
}

// Lookup returns a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Tools returns all registered tools in stable name order.
func (r *Registry) Tools() []Tool {
	keys := make([]string, 0, len(r.byName))
	for name := range r.byName {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	out := make([]Tool, 0, len(keys))
	for _, name := range keys {
		out = append(out, r.byName[name])
	}
	return out
}

// Definitions converts registered tools into LLM request tool
// definitions. Every schema here is a closed object with all fields
// required, so the definitions are flagged strict.
func (r *Registry) Definitions() []llm.ToolDefinition {
	tools := r.Tools()
	defs := make([]llm.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		defs = append(defs, llm.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Schema(),
			Strict:      true,
		})
	}
	return defs
}

// Dispatch resolves the tool a model call names and executes it with
// the call's raw argument payload.
func (r *Registry) Dispatch(ctx context.Context, call llm.ToolCall) (string, error) {
	tool, ok := r.Lookup(call.Name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", call.Name)
	}
	out, err := tool.Execute(ctx, call.Arguments)
	if err != nil {
		return "", fmt.Errorf("execute tool %s: %w", call.Name, err)
	}
	return out, nil
}
