package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

const defaultQuestion = "What is the weather like in Paris today?"

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				question = defaultQuestion
			}

			app, err := newApp()
			if err != nil {
				return err
			}

			answer, err := app.runner.Run(cmd.Context(), question)
			if err != nil {
				return err
			}
			return renderMarkdown(cmd.OutOrStdout(), answer)
		},
	}
}
