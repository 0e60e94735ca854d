package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aegisml/aegis/internal/providers"
	"github.com/aegisml/aegis/internal/rules"
)

// FileName is the project manifest file located by upward search.
const FileName = "aegis.toml"

// ErrNotFound reports that no manifest exists between the start directory
// and the filesystem root.
var ErrNotFound = errors.New("manifest not found")

// Manifest holds the tool-scoped overrides parsed from aegis.toml.
type Manifest struct {
	Rules     rules.Overrides     `toml:"rules"`
	Providers providers.Overrides `toml:"providers"`
}

// Find walks upward from startDir looking for the manifest file and returns
// its path. An empty startDir means the current working directory.
func Find(startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load locates and parses the manifest starting from startDir. A missing
// manifest is not an error: the zero Manifest (no overrides) is returned so
// a scan can proceed with base configuration only.
func Load(startDir string) (Manifest, error) {
	path, err := Find(startDir)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Manifest{}, nil
		}
		return Manifest{}, err
	}
	return LoadFile(path)
}

// LoadFile parses a manifest at an explicit path.
func LoadFile(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}
