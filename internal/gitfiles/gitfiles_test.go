package gitfiles

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestIsCodeFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"app.py", true},
		{"script.SH", true},
		{"query.SQL", true},
		{"view.tsx", true},
		{"README.md", false},
		{"image.png", false},
		{"Makefile", false},
		{"dir/config.yaml", false},
	}
	for _, tt := range tests {
		if got := IsCodeFile(tt.path); got != tt.want {
			t.Errorf("IsCodeFile(%q) = %t, want %t", tt.path, got, tt.want)
		}
	}
}

func TestResolveExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.py")
	if err := os.WriteFile(file, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Explicit files are kept even without a code extension.
	noExt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(noExt, []byte("notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := Resolve([]string{file, noExt}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
}

func TestResolveDirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"main.go", "pkg/util.py", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("content\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := Resolve([]string{dir}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want the two code files", paths)
	}
	for _, p := range paths {
		if !IsCodeFile(p) {
			t.Errorf("non-code file resolved from directory: %s", p)
		}
	}
}

func TestResolveMissingTarget(t *testing.T) {
	_, err := Resolve([]string{"/does/not/exist.py"}, "")
	if err == nil {
		t.Fatal("expected error for missing explicit target")
	}
}

func TestTrackedCodeFiles(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}
	for _, f := range []string{"main.go", "app.py", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("content\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	run("git", "init")
	run("git", "add", ".")

	files, err := TrackedCodeFiles(dir)
	if err != nil {
		t.Fatalf("TrackedCodeFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want the two tracked code files", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "README.md" {
			t.Error("non-code file listed")
		}
	}
}

func TestTrackedCodeFilesOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := TrackedCodeFiles(dir)
	if !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("expected ErrGitNotFound, got %v", err)
	}
}
