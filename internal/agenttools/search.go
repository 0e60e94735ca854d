package agenttools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Match is one pattern hit within a file. Line and Column are 1-based.
type Match struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Content string `json:"content"`
}

// FileMatches groups matches by file for the batch search tool.
type FileMatches struct {
	FilePath string  `json:"file_path"`
	Matches  []Match `json:"matches"`
}

func (r *Registry) searchPatternTool() Tool {
	return Tool{
		Name:        "search_pattern",
		Description: "Search a single file for a literal pattern, case-insensitively.",
		InputSchema: objectSchema(map[string]any{
			"file_path": map[string]any{"type": "string", "description": "Path to the file to search"},
			"pattern":   map[string]any{"type": "string", "description": "Literal pattern to search for"},
		}, "file_path", "pattern"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePath string `json:"file_path"`
				Pattern  string `json:"pattern"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("search_pattern: %w", err)
			}
			matches, err := searchOne(args.FilePath, args.Pattern)
			if err != nil {
				return nil, err
			}
			return FileMatches{FilePath: args.FilePath, Matches: matches}, nil
		},
	}
}

func (r *Registry) searchPatternsTool() Tool {
	return Tool{
		Name:        "search_patterns",
		Description: "Search multiple files for a literal pattern. Unreadable files are skipped, not errors.",
		InputSchema: objectSchema(map[string]any{
			"file_paths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Paths to the files to search",
			},
			"pattern": map[string]any{"type": "string", "description": "Literal pattern to search for"},
		}, "file_paths", "pattern"),
		Call: func(_ context.Context, input json.RawMessage) (any, error) {
			var args struct {
				FilePaths []string `json:"file_paths"`
				Pattern   string   `json:"pattern"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, fmt.Errorf("search_patterns: %w", err)
			}
			out := struct {
				Results []FileMatches `json:"results"`
			}{Results: []FileMatches{}}
			for _, p := range args.FilePaths {
				matches, err := searchOne(p, args.Pattern)
				if err != nil {
					r.log.Debug("search_patterns skipping file", zap.String("path", p), zap.Error(err))
					continue
				}
				out.Results = append(out.Results, FileMatches{FilePath: p, Matches: matches})
			}
			return out, nil
		},
	}
}

func searchOne(path, pattern string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	needle := strings.ToLower(pattern)
	matches := []Match{}
	for i, line := range strings.Split(string(data), "\n") {
		if col := strings.Index(strings.ToLower(line), needle); col >= 0 {
			matches = append(matches, Match{
				Line:    i + 1,
				Column:  col + 1,
				Content: strings.TrimSpace(line),
			})
		}
	}
	return matches, nil
}
