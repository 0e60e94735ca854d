package agenttools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/aegisml/aegis/internal/redact"
)

// Tool is one capability registered with the agent. InputSchema is a JSON
// Schema fragment in the shape the agent API expects.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Call        func(ctx context.Context, input json.RawMessage) (any, error)
}

// Options configures tool behavior.
type Options struct {
	// RedactPaths are globs whose files are withheld from the agent entirely.
	RedactPaths []string
}

// Registry holds the fixed tool set. It is built once per scan and shared
// across all concurrent batch dispatches.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
	opts   Options
	log    *zap.Logger
}

// NewRegistry builds the default tool set.
func NewRegistry(opts Options, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{byName: make(map[string]Tool), opts: opts, log: log}
	r.register(r.readFileTool())
	r.register(r.readFilesTool())
	r.register(r.parseSourceTool())
	r.register(r.parseSourcesTool())
	r.register(r.searchPatternTool())
	r.register(r.searchPatternsTool())
	return r
}

func (r *Registry) register(t Tool) {
	r.tools = append(r.tools, t)
	r.byName[t.Name] = t
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	return r.tools
}

// Call invokes a tool by name.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (any, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return t.Call(ctx, input)
}

// FileContent is the read tool output for one file.
type FileContent struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`
	LineCount int    `json:"line_count"`
}

func (r *Registry) readFileTool() Tool {
	return Tool{
		Name:        "read_file",
		Description: "Read the contents of a single file. Content lines carry 'N: ' line-number prefixes.",
		InputSchema: objectSchema(map[string]any{
			"file_path": map[string]any{"type": "string", "description": "Path to the file to read"},
		}, "file_path"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("read_file: %w", err)
			}
			return r.readOne(args.FilePath)
		},
	}
}

func (r *Registry) readFilesTool() Tool {
	return Tool{
		Name:        "read_files",
		Description: "Read multiple files at once. Unreadable files are skipped, not errors.",
		InputSchema: objectSchema(map[string]any{
			"file_paths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Paths to the files to read",
			},
		}, "file_paths"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePaths []string `json:"file_paths"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("read_files: %w", err)
			}
			out := struct {
				Files   []FileContent `json:"files"`
				Skipped []string      `json:"skipped,omitempty"`
			}{Files: []FileContent{}}
			for _, p := range args.FilePaths {
				fc, err := r.readOne(p)
				if err != nil {
					r.log.Debug("read_files skipping file", zap.String("path", p), zap.Error(err))
					out.Skipped = append(out.Skipped, p)
					continue
				}
				out.Files = append(out.Files, fc)
			}
			return out, nil
		},
	}
}

func (r *Registry) readOne(path string) (FileContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileContent{}, fmt.Errorf("reading %s: %w", path, err)
	}
	content := redact.Content(string(data), path, r.opts.RedactPaths)
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d: %s\n", i+1, line)
	}
	return FileContent{
		FilePath:  path,
		Content:   b.String(),
		LineCount: len(lines),
	}, nil
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
