package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// renderMarkdown writes text to out, styled with glamour when out is a
// terminal. Rendering failures fall back to plain text.
func renderMarkdown(out io.Writer, text string) error {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if rendered, renderErr := renderer.Render(text); renderErr == nil {
				_, err = fmt.Fprint(out, rendered)
				return err
			}
		}
	}
	_, err := fmt.Fprintln(out, text)
	return err
}
