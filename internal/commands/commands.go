// Package commands implements the slash commands available inside the
// interactive chat REPL.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/skylark-ai/skylark/internal/tools"
)

const helpText = "Commands: /help, /tools, /reset, /quit"

// ErrQuit is returned by Handle when the user asks to leave the REPL.
var ErrQuit = errors.New("quit requested")

// Resetter clears the active conversation state.
type Resetter interface {
	Reset()
}

// ToolLister reports the tools available to the model.
type ToolLister interface {
	Tools() []tools.Tool
}

// Handler dispatches supported slash commands.
type Handler struct {
	resetter Resetter
	registry ToolLister
}

// New creates a new slash command handler.
func New(resetter Resetter, registry ToolLister) *Handler {
	return &Handler{resetter: resetter, registry: registry}
}

// Handle executes one command and reports whether it was handled.
// Quit commands are reported through ErrQuit.
func (h *Handler) Handle(cmd string, w io.Writer) (handled bool, err error) {
	if w == nil {
		return false, errors.New("output writer is required")
	}

	switch normalize(cmd) {
	case "/help", "/commands":
		return true, h.handleHelp(w)
	case "/new", "/reset":
		return true, h.handleReset(w)
	case "/tools":
		return true, h.handleTools(w)
	case "/quit", "/exit":
		return true, ErrQuit
	default:
		return false, nil
	}
}

func (h *Handler) handleHelp(w io.Writer) error {
	_, err := fmt.Fprintln(w, helpText)
	return err
}

func (h *Handler) handleReset(w io.Writer) error {
	if h.resetter == nil {
		return errors.New("reset command is unavailable")
	}
	h.resetter.Reset()
	_, err := fmt.Fprintln(w, "Conversation cleared.")
	return err
}

func (h *Handler) handleTools(w io.Writer) error {
	if h.registry == nil {
		return errors.New("tools command is unavailable")
	}
	all := h.registry.Tools()
	if len(all) == 0 {
		_, err := fmt.Fprintln(w, "No tools registered.")
		return err
	}
	var b strings.Builder
	b.WriteString("Available tools:\n")
	for i, tool := range all {
		_, _ = fmt.Fprintf(&b, "  %s - %s", tool.Name(), tool.Description())
		if i < len(all)-1 {
			b.WriteByte('\n')
		}
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
