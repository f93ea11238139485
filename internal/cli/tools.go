package cli

import (
	"fmt"

	"github.com/skylark-ai/skylark/internal/config"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed to the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			registry, err := buildToolRegistry(cfg)
			if err != nil {
				return err
			}
			for _, tool := range registry.Tools() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", tool.Name(), tool.Description())
			}
			return nil
		},
	}
}
