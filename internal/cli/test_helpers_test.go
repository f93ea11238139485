package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/skylark-ai/skylark/internal/config"
	"github.com/skylark-ai/skylark/internal/llm"
)

const validConfigBody = `
[llm.default]
api_key = "test-key"
provider = "openai"
model = "gpt-4o-mini"
`

func createTestHome(t *testing.T) string {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), ".skylark")
	t.Setenv("SKYLARK_HOME", dataDir)
	return dataDir
}

func writeConfig(t *testing.T, dataDir, body string) {
	t.Helper()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// swapProviderFactory installs a scripted provider for the test duration.
func swapProviderFactory(t *testing.T, p llm.Provider) {
	t.Helper()
	origFactory := providerFactory
	t.Cleanup(func() { providerFactory = origFactory })
	providerFactory = func(_ config.LLMProviderConfig) (llm.Provider, error) {
		return p, nil
	}
}

type fakeProvider struct {
	requests []llm.ChatRequest
	replies  []llm.Reply
	err      error
}

func (p *fakeProvider) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.replies) == 0 {
		return nil, fmt.Errorf("no scripted reply for request %d", len(p.requests))
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return &llm.ChatResponse{Reply: reply}, nil
}
