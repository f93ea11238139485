package llm

import (
	"testing"

	"github.com/skylark-ai/skylark/internal/config"
)

func TestNewProviderFromConfig_SelectsOpenAI(t *testing.T) {
	p, err := NewProviderFromConfig(config.LLMProviderConfig{
		Provider: "openai",
		APIKey:   "k",
		Model:    "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*openAIProvider); !ok {
		t.Fatalf("expected openai provider, got %T", p)
	}
}

func TestNewProviderFromConfig_SelectsAnthropic(t *testing.T) {
	p, err := NewProviderFromConfig(config.LLMProviderConfig{
		Provider: "anthropic",
		APIKey:   "k",
		Model:    "claude-sonnet-4-5",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*anthropicProvider); !ok {
		t.Fatalf("expected anthropic provider, got %T", p)
	}
}

func TestNewProviderFromConfig_UnsupportedProvider(t *testing.T) {
	_, err := NewProviderFromConfig(config.LLMProviderConfig{
		Provider: "nope",
		APIKey:   "k",
		Model:    "m",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestNewProviderFromConfig_MissingAPIKey(t *testing.T) {
	_, err := NewProviderFromConfig(config.LLMProviderConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
	})
	if err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
