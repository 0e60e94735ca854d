package agenttools

import (
	"context"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// SyntaxSummary is the parse tool output: a compact structural view of one
// source file. Only Go sources are parsed; other languages are reported as
// unsupported rather than failing.
type SyntaxSummary struct {
	FilePath  string   `json:"file_path"`
	Language  string   `json:"language"`
	Functions []string `json:"functions"`
	Types     []string `json:"types"`
	Imports   []string `json:"imports"`
	Error     string   `json:"error,omitempty"`
}

func (r *Registry) parseSourceTool() Tool {
	return Tool{
		Name:        "parse_source",
		Description: "Parse a single source file into a syntax summary (functions, types, imports).",
		InputSchema: objectSchema(map[string]any{
			"file_path": map[string]any{"type": "string", "description": "Path to the source file"},
		}, "file_path"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePath string `json:"file_path"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("parse_source: %w", err)
			}
			return parseOne(args.FilePath), nil
		},
	}
}

func (r *Registry) parseSourcesTool() Tool {
	return Tool{
		Name:        "parse_sources",
		Description: "Parse multiple source files into syntax summaries. Unparseable files are skipped, not errors.",
		InputSchema: objectSchema(map[string]any{
			"file_paths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Paths to the source files",
			},
		}, "file_paths"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePaths []string `json:"file_paths"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("parse_sources: %w", err)
			}
			out := struct {
				Summaries []SyntaxSummary `json:"summaries"`
			}{Summaries: []SyntaxSummary{}}
			for _, p := range args.FilePaths {
				s := parseOne(p)
				if s.Error != "" && s.Language == "" {
					r.log.Debug("parse_sources skipping file", zap.String("path", p), zap.String("reason", s.Error))
					continue
				}
				out.Summaries = append(out.Summaries, s)
			}
			return out, nil
		},
	}
}

// parseOne never fails hard: read or parse problems are carried in the
// summary's Error field so single-tool calls still return a usable result.
func parseOne(path string) SyntaxSummary {
	s := SyntaxSummary{FilePath: path, Functions: []string{}, Types: []string{}, Imports: []string{}}

	if strings.ToLower(filepath.Ext(path)) != ".go" {
		s.Error = fmt.Sprintf("unsupported language for %s: only Go sources are parsed", path)
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.Error = fmt.Sprintf("reading %s: %v", path, err)
		return s
	}

	s.Language = "go"
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, data, parser.ParseComments)
	if err != nil {
		s.Error = fmt.Sprintf("syntax error: %v", err)
		return s
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			s.Functions = append(s.Functions, d.Name.Name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					s.Types = append(s.Types, ts.Name.Name)
				}
			}
		}
	}
	for _, imp := range file.Imports {
		s.Imports = append(s.Imports, strings.Trim(imp.Path.Value, `"`))
	}
	sort.Strings(s.Functions)
	sort.Strings(s.Types)
	sort.Strings(s.Imports)
	return s
}
