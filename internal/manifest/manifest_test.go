package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aegisml/aegis/internal/rules"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeManifest(t, root, "")

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestFindNotFound(t *testing.T) {
	if _, err := Find(t.TempDir()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadMissingManifestIsEmpty(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Rules) != 0 || len(m.Providers) != 0 {
		t.Errorf("missing manifest should yield zero Manifest, got %+v", m)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[rules."OWASP-001"]
enabled = false

[rules."AEGIS-002"]
severity = "error"

[providers.OpenAI]
safety_level = "worrying"
`)

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	ov, ok := m.Rules["OWASP-001"]
	if !ok || ov.Enabled == nil || *ov.Enabled {
		t.Errorf("OWASP-001 override = %+v, want enabled=false", ov)
	}
	if m.Rules["AEGIS-002"].Severity != "error" {
		t.Errorf("AEGIS-002 severity = %q", m.Rules["AEGIS-002"].Severity)
	}
	if m.Providers["OpenAI"].SafetyLevel != "worrying" {
		t.Errorf("OpenAI safety = %q", m.Providers["OpenAI"].SafetyLevel)
	}

	// The parsed overrides must flow through the rule merge.
	catalog, err := rules.LoadWithOverrides(m.Rules)
	if err != nil {
		t.Fatalf("LoadWithOverrides: %v", err)
	}
	for _, r := range catalog {
		if r.ID() == "OWASP-001" && r.Enabled {
			t.Error("manifest override did not disable OWASP-001")
		}
		if r.ID() == "AEGIS-002" && r.Severity != rules.SeverityError {
			t.Errorf("AEGIS-002 severity = %q, want error", r.Severity)
		}
	}
}

func TestLoadFileBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "rules = not valid")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
