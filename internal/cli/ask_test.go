package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/skylark-ai/skylark/internal/llm"
)

func TestAskCommandPrintsAnswer(t *testing.T) {
	dataDir := createTestHome(t)
	writeConfig(t, dataDir, validConfigBody)

	provider := &fakeProvider{replies: []llm.Reply{llm.TextReply{Content: "hello from skylark"}}}
	swapProviderFactory(t, provider)

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"ask", "hi", "there"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute ask: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "hello from skylark" {
		t.Fatalf("expected answer output, got %q", got)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("expected one completion request, got %d", len(provider.requests))
	}
	msgs := provider.requests[0].Messages
	if len(msgs) != 1 || msgs[0].Content != "hi there" {
		t.Fatalf("expected joined question in request, got %#v", msgs)
	}
}

func TestAskCommandDefaultQuestion(t *testing.T) {
	dataDir := createTestHome(t)
	writeConfig(t, dataDir, validConfigBody)

	provider := &fakeProvider{replies: []llm.Reply{llm.TextReply{Content: "Paris is sunny."}}}
	swapProviderFactory(t, provider)

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"ask"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute ask: %v", err)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("expected one completion request, got %d", len(provider.requests))
	}
	if got := provider.requests[0].Messages[0].Content; got != defaultQuestion {
		t.Fatalf("expected default question %q, got %q", defaultQuestion, got)
	}
}

// TestAskEndToEndToolRound drives the full flow over HTTP: the first
// completion requests get_weather, the tool queries the forecast server,
// and the folded conversation yields a final text answer.
func TestAskEndToEndToolRound(t *testing.T) {
	dataDir := createTestHome(t)

	weatherHits := 0
	var weatherQuery url.Values
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weatherHits++
		weatherQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"current": {"temperature_2m": 24.9}}`)
	}))
	defer weatherSrv.Close()

	llmHits := 0
	var secondRequest struct {
		Messages []struct {
			Role       string  `json:"role"`
			Content    *string `json:"content"`
			ToolCallID string  `json:"tool_call_id"`
			ToolCalls  []struct {
				ID string `json:"id"`
			} `json:"tool_calls"`
		} `json:"messages"`
	}
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llmHits++
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read completion request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		switch llmHits {
		case 1:
			fmt.Fprint(w, `{
				"choices": [
					{
						"message": {
							"content": null,
							"tool_calls": [
								{
									"id": "call_1",
									"type": "function",
									"function": {
										"name": "get_weather",
										"arguments": "{\"latitude\": 48.8566, \"longitude\": 2.3522}"
									}
								}
							]
						}
					}
				],
				"usage": {"prompt_tokens": 11, "completion_tokens": 7, "total_tokens": 18}
			}`)
		case 2:
			if err := json.Unmarshal(body, &secondRequest); err != nil {
				t.Errorf("decode second completion request: %v", err)
			}
			fmt.Fprint(w, `{
				"choices": [
					{"message": {"content": "It is currently 24.9°C in Paris."}}
				],
				"usage": {"prompt_tokens": 31, "completion_tokens": 12, "total_tokens": 43}
			}`)
		default:
			t.Errorf("unexpected completion request %d", llmHits)
			fmt.Fprint(w, `{"choices": []}`)
		}
	}))
	defer llmSrv.Close()

	writeConfig(t, dataDir, fmt.Sprintf(`
[llm.default]
api_key = "test-key"
provider = "openai"
model = "gpt-4o-mini"
base_url = %q

[weather]
endpoint = %q
`, llmSrv.URL, weatherSrv.URL))

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"ask"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute ask: %v", err)
	}

	if !strings.Contains(out.String(), "24.9") {
		t.Fatalf("expected final answer to carry the temperature, got %q", out.String())
	}
	if llmHits != 2 {
		t.Fatalf("expected two completion requests, got %d", llmHits)
	}
	if weatherHits != 1 {
		t.Fatalf("expected one weather request, got %d", weatherHits)
	}
	if got := weatherQuery.Get("latitude"); got != "48.8566" {
		t.Fatalf("expected latitude 48.8566, got %q", got)
	}
	if got := weatherQuery.Get("longitude"); got != "2.3522" {
		t.Fatalf("expected longitude 2.3522, got %q", got)
	}
	if got := weatherQuery.Get("current"); got != "temperature_2m" {
		t.Fatalf("expected current=temperature_2m, got %q", got)
	}

	msgs := secondRequest.Messages
	if len(msgs) != 4 {
		t.Fatalf("expected system, user, assistant, tool messages, got %d", len(msgs))
	}
	assistant, toolMsg := msgs[2], msgs[3]
	if assistant.Role != "assistant" || len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "call_1" {
		t.Fatalf("unexpected folded assistant message: %+v", assistant)
	}
	if assistant.Content != nil {
		t.Fatalf("expected null assistant content alongside tool calls, got %q", *assistant.Content)
	}
	if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call_1" {
		t.Fatalf("unexpected folded tool message: %+v", toolMsg)
	}
	if toolMsg.Content == nil || *toolMsg.Content != "24.9" {
		t.Fatalf("expected raw tool result 24.9, got %+v", toolMsg.Content)
	}
}

func TestAskMissingCredentialAbortsBeforeNetwork(t *testing.T) {
	dataDir := createTestHome(t)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	writeConfig(t, dataDir, fmt.Sprintf(`
[llm.default]
api_key = ""
provider = "openai"
model = "gpt-4o-mini"
base_url = %q

[weather]
endpoint = %q
`, srv.URL, srv.URL))

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"ask"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "api_key is required") {
		t.Fatalf("expected api_key validation error, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no network traffic, got %d requests", hits)
	}
}
