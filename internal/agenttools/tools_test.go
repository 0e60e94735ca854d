package agenttools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func callTool(t *testing.T, r *Registry, name string, args any) any {
	t.Helper()
	input, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Call(context.Background(), name, input)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return out
}

func TestRegistryToolSet(t *testing.T) {
	r := NewRegistry(Options{}, nil)
	want := []string{"read_file", "read_files", "parse_source", "parse_sources", "search_pattern", "search_patterns"}
	tools := r.Tools()
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("tools[%d] = %s, want %s", i, tools[i].Name, name)
		}
	}

	if _, err := r.Call(context.Background(), "no_such_tool", nil); err == nil {
		t.Error("unknown tool name should error")
	}
}

func TestReadFileLinePrefixes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "import os\nprint(\"hi\")\n")
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "read_file", map[string]string{"file_path": path})
	fc, ok := out.(FileContent)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if fc.LineCount != 2 {
		t.Errorf("line count = %d, want 2", fc.LineCount)
	}
	if !strings.Contains(fc.Content, "1: import os\n") || !strings.Contains(fc.Content, "2: print(\"hi\")\n") {
		t.Errorf("missing line prefixes:\n%s", fc.Content)
	}
}

func TestReadFilesSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.py", "x = 1\n")
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "read_files", map[string]any{
		"file_paths": []string{good, filepath.Join(dir, "missing.py")},
	})
	data, _ := json.Marshal(out)
	var decoded struct {
		Files   []FileContent `json:"files"`
		Skipped []string      `json:"skipped"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Files) != 1 || decoded.Files[0].FilePath != good {
		t.Errorf("files = %+v", decoded.Files)
	}
	if len(decoded.Skipped) != 1 {
		t.Errorf("skipped = %v", decoded.Skipped)
	}
}

func TestReadFileRedactsConfiguredPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "API_KEY=supersecret\n")
	r := NewRegistry(Options{RedactPaths: []string{"**/.env"}}, nil)

	out := callTool(t, r, "read_file", map[string]string{"file_path": path})
	fc := out.(FileContent)
	if strings.Contains(fc.Content, "supersecret") {
		t.Error("redacted path content leaked to tool output")
	}
}

func TestParseSourceGo(t *testing.T) {
	dir := t.TempDir()
	src := `package demo

import "fmt"

type Widget struct{}

func Greet() { fmt.Println("hi") }

func helper() {}
`
	path := writeFile(t, dir, "demo.go", src)
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "parse_source", map[string]string{"file_path": path})
	s, ok := out.(SyntaxSummary)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if s.Language != "go" || s.Error != "" {
		t.Fatalf("summary = %+v", s)
	}
	if fmt.Sprint(s.Functions) != "[Greet helper]" {
		t.Errorf("functions = %v", s.Functions)
	}
	if fmt.Sprint(s.Types) != "[Widget]" {
		t.Errorf("types = %v", s.Types)
	}
	if fmt.Sprint(s.Imports) != "[fmt]" {
		t.Errorf("imports = %v", s.Imports)
	}
}

func TestParseSourceUnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "x = 1\n")
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "parse_source", map[string]string{"file_path": path})
	s := out.(SyntaxSummary)
	if s.Error == "" || !strings.Contains(s.Error, "unsupported language") {
		t.Errorf("expected unsupported-language error, got %+v", s)
	}
}

func TestSearchPattern(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "import OpenAI\nx = 1\nclient = openai.Client()\n")
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "search_pattern", map[string]string{
		"file_path": path,
		"pattern":   "openai",
	})
	fm := out.(FileMatches)
	if len(fm.Matches) != 2 {
		t.Fatalf("matches = %+v", fm.Matches)
	}
	if fm.Matches[0].Line != 1 || fm.Matches[0].Column != 8 {
		t.Errorf("first match at %d:%d", fm.Matches[0].Line, fm.Matches[0].Column)
	}
	if fm.Matches[1].Line != 3 {
		t.Errorf("second match line = %d", fm.Matches[1].Line)
	}
}

func TestSearchPatternsSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.py", "token = secret\n")
	r := NewRegistry(Options{}, nil)

	out := callTool(t, r, "search_patterns", map[string]any{
		"file_paths": []string{good, filepath.Join(dir, "nope.py")},
		"pattern":    "secret",
	})
	data, _ := json.Marshal(out)
	var decoded struct {
		Results []FileMatches `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Results) != 1 || len(decoded.Results[0].Matches) != 1 {
		t.Errorf("results = %+v", decoded.Results)
	}
}
