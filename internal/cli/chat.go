package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/skylark-ai/skylark/internal/chat"
	"github.com/skylark-ai/skylark/internal/commands"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const replPrompt = "you> "

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			// The readline history file lives in the home dir.
			if err := os.MkdirAll(app.cfg.HomeDir, 0o755); err != nil {
				return fmt.Errorf("create home dir: %w", err)
			}

			handler := commands.New(app.runner, app.registry)

			var channel replChannel
			rlChannel, err := newReadlineChannel(cmd.InOrStdin(), cmd.OutOrStdout(), app.cfg.HistoryPath())
			if err == nil {
				defer rlChannel.Close()
				channel = rlChannel
			} else {
				channel = newStdioChannel(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
			}

			return runREPL(cmd.Context(), app.runner, handler, cmd.OutOrStdout(), channel)
		},
	}
}

func runREPL(ctx context.Context, runner *chat.Runner, handler *commands.Handler, out io.Writer, channel replChannel) error {
	if err := channel.WriteMeta("Interactive chat. Type /help for commands, /quit to leave."); err != nil {
		return err
	}

	for {
		raw, err := channel.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(raw)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			handled, err := handler.Handle(input, out)
			if err != nil {
				if errors.Is(err, commands.ErrQuit) {
					return channel.WriteMeta("Bye.")
				}
				if writeErr := channel.WriteMeta(fmt.Sprintf("error: %v", err)); writeErr != nil {
					return writeErr
				}
				continue
			}
			if !handled {
				if err := channel.WriteMeta("Unknown command. Type /help to list commands."); err != nil {
					return err
				}
			}
			continue
		}

		answer, err := runner.Run(ctx, input)
		if err != nil {
			if writeErr := channel.WriteMeta(fmt.Sprintf("error: %v", err)); writeErr != nil {
				return writeErr
			}
			continue
		}
		if err := channel.Write(answer); err != nil {
			return err
		}
	}
}

type replChannel interface {
	Read() (string, error)
	Write(text string) error
	WriteMeta(text string) error
}

type readlineChannel struct {
	rl  *readline.Instance
	out io.Writer
}

func newReadlineChannel(in io.Reader, out io.Writer, historyPath string) (*readlineChannel, error) {
	stdin, ok := in.(io.ReadCloser)
	if !ok {
		return nil, fmt.Errorf("stdin is not read-closer")
	}
	inFile, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(inFile.Fd())) {
		return nil, fmt.Errorf("stdin is not terminal")
	}
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return nil, fmt.Errorf("stdout is not terminal")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath,
		HistoryLimit:    200,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          out,
		Stderr:          out,
	})
	if err != nil {
		return nil, err
	}
	return &readlineChannel{rl: rl, out: out}, nil
}

func (c *readlineChannel) Read() (string, error) {
	line, err := c.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", io.EOF
		}
		return "", err
	}
	return line, nil
}

func (c *readlineChannel) Write(text string) error {
	if err := renderMarkdown(c.out, text); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out)
	return err
}

func (c *readlineChannel) WriteMeta(text string) error {
	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}

func (c *readlineChannel) Close() error {
	return c.rl.Close()
}

type stdioChannel struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newStdioChannel(in *bufio.Reader, out io.Writer) *stdioChannel {
	return &stdioChannel{in: in, out: out, prompt: replPrompt}
}

func (c *stdioChannel) Read() (string, error) {
	if _, err := fmt.Fprint(c.out, c.prompt); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if len(line) > 0 {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func (c *stdioChannel) Write(text string) error {
	if err := renderMarkdown(c.out, text); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out)
	return err
}

func (c *stdioChannel) WriteMeta(text string) error {
	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}
