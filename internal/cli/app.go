package cli

import (
	"fmt"
	"net/http"

	"github.com/skylark-ai/skylark/internal/chat"
	"github.com/skylark-ai/skylark/internal/config"
	"github.com/skylark-ai/skylark/internal/tools"
)

// app bundles the wired dependencies behind the ask and chat commands.
type app struct {
	cfg      *config.Config
	registry *tools.Registry
	runner   *chat.Runner
}

// newApp loads and validates configuration, then wires the model
// provider, tool registry, and turn runner. Validation failures abort
// here, before any network client is built.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateStartup(cfg); err != nil {
		return nil, err
	}

	llmCfg := cfg.DefaultLLM()
	modelProvider, err := providerFactory(llmCfg)
	if err != nil {
		return nil, err
	}

	registry, err := buildToolRegistry(cfg)
	if err != nil {
		return nil, err
	}

	runner, err := chat.NewRunner(modelProvider, registry, cfg.Chat.SystemPrompt, llmCfg.MaxTokens)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, registry: registry, runner: runner}, nil
}

func buildToolRegistry(cfg *config.Config) (*tools.Registry, error) {
	registry := tools.NewRegistry()
	coreTools := []tools.Tool{
		tools.WeatherTool{
			Endpoint: cfg.Weather.Endpoint,
			Client:   &http.Client{Timeout: cfg.Weather.RequestTimeout},
		},
	}
	for _, tool := range coreTools {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("register tool %q: %w", tool.Name(), err)
		}
	}
	return registry, nil
}
