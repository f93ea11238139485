package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skylark-ai/skylark/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var initialize bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print merged configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initialize {
				return initConfig(cmd.OutOrStdout())
			}
			return config.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&initialize, "init", false, "Write a starter config file if none exists")

	return cmd
}

// initConfig writes the starter user config. It refuses to overwrite an
// existing file.
func initConfig(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := cfg.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file %q: %w", path, err)
	}

	rendered, err := config.DefaultUserConfigTOML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.HomeDir, 0o755); err != nil {
		return fmt.Errorf("create home dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	_, err = fmt.Fprintf(out, "Wrote starter config to %s\nSet your API key, then run: lark ask\n", path)
	return err
}
