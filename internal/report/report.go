package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aegisml/aegis/internal/scan"
)

// Writer writes a report in one format.
type Writer interface {
	Write(w io.Writer, r *scan.Report) error
}

// GetWriter returns a writer for the given format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to outPath, or stdout when outPath is empty.
func WriteReport(r *scan.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}
	return writer.Write(w, r)
}

// Save writes the report to a timestamped file in dir and returns the path.
// An empty dir means the current directory.
func Save(r *scan.Report, format, dir string) (string, error) {
	writer, err := GetWriter(format)
	if err != nil {
		return "", err
	}
	ext := "json"
	if format == "markdown" || format == "md" {
		ext = "md"
	}
	if dir == "" {
		dir = "."
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("aegis_scan_results_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	if err := writer.Write(f, r); err != nil {
		return "", err
	}
	return path, nil
}
