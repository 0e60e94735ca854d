package rules

import (
	"errors"
	"testing"
	"testing/fstest"
)

const classYAML = `rule_classes:
  - id: IOH
    name: Input/Output Handling
    description: Handling of untrusted input and model output.
  - id: MP
    name: Model Provider
    description: Choice and lifecycle of model providers.
`

func catalogFS(rulesYAML string) fstest.MapFS {
	return fstest.MapFS{
		"config/rule_configuration.yaml": {Data: []byte(classYAML)},
		"config/rules.yaml":              {Data: []byte(rulesYAML)},
	}
}

func TestLoadFS(t *testing.T) {
	fsys := catalogFS(`rules:
  - organization: ORG
    code: "001"
    rule_class: IOH
    name: Sanitize input
    description: Untrusted input must be sanitized.
    severity: warning
    source:
      name: Internal
      link: "null"
  - organization: ORG
    code: "002"
    rule_class: MP
    name: Approved providers
    description: Only approved providers may be used.
    enabled: false
`)

	catalog, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(catalog))
	}

	first := catalog[0]
	if first.ID() != "ORG-001" {
		t.Errorf("ID = %q, want ORG-001", first.ID())
	}
	if first.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want warning", first.Severity)
	}
	if !first.Enabled {
		t.Error("enabled should default to true")
	}
	if first.Class.Name != "Input/Output Handling" {
		t.Errorf("class not resolved: %+v", first.Class)
	}
	if first.Source.Link != "" {
		t.Errorf(`literal "null" link should normalize to empty, got %q`, first.Source.Link)
	}

	second := catalog[1]
	if second.Severity != SeverityError {
		t.Errorf("missing severity should default to error, got %q", second.Severity)
	}
	if second.Enabled {
		t.Error("explicit enabled: false was not honored")
	}
}

func TestLoadFSUnknownClass(t *testing.T) {
	fsys := catalogFS(`rules:
  - organization: ORG
    code: "001"
    rule_class: NOPE
    name: Broken
    description: References a class that does not exist.
`)
	if _, err := LoadFS(fsys); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
}

func TestLoadFSDuplicateID(t *testing.T) {
	fsys := catalogFS(`rules:
  - organization: ORG
    code: "001"
    rule_class: IOH
    name: First
    description: First.
  - organization: ORG
    code: "001"
    rule_class: IOH
    name: Second
    description: Same derived ID.
`)
	if _, err := LoadFS(fsys); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse for duplicate id, got %v", err)
	}
}

func TestLoadFSMissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"config/rules.yaml": {Data: []byte("rules: []")},
	}
	if _, err := LoadFS(fsys); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	seen := make(map[string]bool)
	for _, r := range catalog {
		if seen[r.ID()] {
			t.Errorf("duplicate rule id %s", r.ID())
		}
		seen[r.ID()] = true
		if r.Class.ID == "" {
			t.Errorf("rule %s has unresolved class", r.ID())
		}
	}
}
