package gitfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrGitNotFound indicates git is unavailable or the directory is not a
// repository, so tracked-file discovery cannot run.
var ErrGitNotFound = errors.New("git not available or not a repository")

// codeExtensions are the file extensions treated as scannable source code.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".c": true, ".cpp": true, ".cc": true, ".cxx": true,
	".h": true, ".hpp": true, ".cs": true, ".go": true, ".rs": true,
	".rb": true, ".php": true, ".swift": true, ".kt": true, ".scala": true,
	".sh": true, ".bash": true, ".zsh": true, ".sql": true, ".r": true,
	".m": true, ".mm": true,
}

// IsCodeFile reports whether path has a recognized code extension.
// The comparison is case-insensitive.
func IsCodeFile(path string) bool {
	return codeExtensions[strings.ToLower(filepath.Ext(path))]
}

// TrackedCodeFiles lists git-tracked files under root filtered to code
// files. Root empty means the current directory.
func TrackedCodeFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files")
	if root != "" {
		cmd.Dir = root
	}
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", ErrGitNotFound, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !IsCodeFile(line) {
			continue
		}
		if root != "" {
			line = filepath.Join(root, line)
		}
		files = append(files, line)
	}
	sort.Strings(files)
	return files, nil
}

// Resolve turns the user's targets into the list of files to scan. Explicit
// files are kept verbatim, directories are walked for code files, and a
// target that does not exist is an error. With no targets, git discovery
// under root is used.
func Resolve(targets []string, root string) ([]string, error) {
	if len(targets) == 0 {
		return TrackedCodeFiles(root)
	}

	var resolved []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", target)
		}
		if !info.IsDir() {
			resolved = append(resolved, target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsCodeFile(path) {
				resolved = append(resolved, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
	}
	return resolved, nil
}
