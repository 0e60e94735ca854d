package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aegisml/aegis/internal/agenttools"
)

func testAgent(t *testing.T, serverURL string) *Anthropic {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("AEGIS_AGENT_BASE_URL", serverURL)
	a, err := NewAnthropic("claude-sonnet-4-20250514", agenttools.NewRegistry(agenttools.Options{}, nil), nil)
	if err != nil {
		t.Fatalf("NewAnthropic: %v", err)
	}
	return a
}

func TestNewAnthropicRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewAnthropic("claude-sonnet-4-20250514", agenttools.NewRegistry(agenttools.Options{}, nil), nil)
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("replicate", "some-model", agenttools.NewRegistry(agenttools.Options{}, nil), nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRunFinalAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("missing API key header")
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Error("missing anthropic-version header")
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Tools) == 0 {
			t.Error("request carries no tool definitions")
		}

		json.NewEncoder(w).Encode(anthropicResponse{
			StopReason: "end_turn",
			Content: []contentBlock{
				{Type: "text", Text: validAnalysis},
			},
		})
	}))
	defer server.Close()

	a := testAgent(t, server.URL)
	out, err := a.Run(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Analysis == nil {
		t.Fatalf("expected structured analysis, got raw %q", out.Raw)
	}
	if out.Analysis.RuleResults[0].RuleID != "ORG-001" {
		t.Errorf("rule results = %+v", out.Analysis.RuleResults)
	}
}

func TestRunToolUseLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		if calls == 1 {
			input, _ := json.Marshal(map[string]string{"file_path": path})
			json.NewEncoder(w).Encode(anthropicResponse{
				StopReason: "tool_use",
				Content: []contentBlock{
					{Type: "tool_use", ID: "toolu_1", Name: "read_file", Input: input},
				},
			})
			return
		}

		// Second round must carry the tool result back.
		last := req.Messages[len(req.Messages)-1]
		if last.Role != "user" || len(last.Content) != 1 {
			t.Errorf("unexpected final message: %+v", last)
		}
		result := last.Content[0]
		if result.Type != "tool_result" || result.ToolUseID != "toolu_1" {
			t.Errorf("tool result block = %+v", result)
		}
		if result.IsError {
			t.Errorf("tool result flagged as error: %s", result.Content)
		}
		if !strings.Contains(result.Content, "1: x = 1") {
			t.Errorf("tool result missing file content: %s", result.Content)
		}

		json.NewEncoder(w).Encode(anthropicResponse{
			StopReason: "end_turn",
			Content:    []contentBlock{{Type: "text", Text: validAnalysis}},
		})
	}))
	defer server.Close()

	a := testAgent(t, server.URL)
	out, err := a.Run(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if out.Analysis == nil {
		t.Errorf("expected structured analysis after tool round, got raw %q", out.Raw)
	}
}

func TestRunToolErrorReportedToModel(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			input, _ := json.Marshal(map[string]string{"file_path": "/does/not/exist.py"})
			json.NewEncoder(w).Encode(anthropicResponse{
				StopReason: "tool_use",
				Content: []contentBlock{
					{Type: "tool_use", ID: "toolu_1", Name: "read_file", Input: input},
				},
			})
			return
		}
		var req anthropicRequest
		json.NewDecoder(r.Body).Decode(&req)
		result := req.Messages[len(req.Messages)-1].Content[0]
		if !result.IsError {
			t.Error("failed tool call not flagged with is_error")
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			StopReason: "end_turn",
			Content:    []contentBlock{{Type: "text", Text: validAnalysis}},
		})
	}))
	defer server.Close()

	a := testAgent(t, server.URL)
	if _, err := a.Run(context.Background(), "analyze this"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	a := testAgent(t, server.URL)
	_, err := a.Run(context.Background(), "analyze this")
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}
