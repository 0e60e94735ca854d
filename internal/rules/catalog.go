package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed config/rule_configuration.yaml config/rules.yaml
var baseConfig embed.FS

// Sentinel errors for catalog loading.
var (
	ErrConfigNotFound = errors.New("base config file not found")
	ErrConfigParse    = errors.New("base config parse error")
)

const (
	classFile = "config/rule_configuration.yaml"
	rulesFile = "config/rules.yaml"
)

type classDoc struct {
	RuleClasses []Class `yaml:"rule_classes"`
}

type ruleDoc struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Organization string `yaml:"organization"`
	Code         string `yaml:"code"`
	RuleClass    string `yaml:"rule_class"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Severity     string `yaml:"severity"`
	Enabled      *bool  `yaml:"enabled"`
	Source       struct {
		Name string `yaml:"name"`
		Link string `yaml:"link"`
	} `yaml:"source"`
}

// Load returns the embedded base catalog.
func Load() ([]Rule, error) {
	return LoadFS(baseConfig)
}

// LoadFS loads the rule catalog from fsys, which must contain
// config/rule_configuration.yaml and config/rules.yaml.
//
// Every rule's class reference must resolve to a declared rule class, and
// the derived rule IDs must be unique; either violation is fatal.
func LoadFS(fsys fs.FS) ([]Rule, error) {
	var classes classDoc
	if err := readYAML(fsys, classFile, &classes); err != nil {
		return nil, err
	}
	classByID := make(map[string]Class, len(classes.RuleClasses))
	for _, c := range classes.RuleClasses {
		classByID[c.ID] = c
	}

	var doc ruleDoc
	if err := readYAML(fsys, rulesFile, &doc); err != nil {
		return nil, err
	}

	catalog := make([]Rule, 0, len(doc.Rules))
	seen := make(map[string]bool, len(doc.Rules))
	for _, spec := range doc.Rules {
		class, ok := classByID[spec.RuleClass]
		if !ok {
			return nil, fmt.Errorf("%w: rule class %q not found for rule %s-%s",
				ErrConfigParse, spec.RuleClass, spec.Organization, spec.Code)
		}

		sevStr := spec.Severity
		if sevStr == "" {
			sevStr = string(SeverityError)
		}
		sev, err := ParseSeverity(sevStr)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %s-%s: %v",
				ErrConfigParse, spec.Organization, spec.Code, err)
		}

		enabled := true
		if spec.Enabled != nil {
			enabled = *spec.Enabled
		}

		r := Rule{
			Organization: spec.Organization,
			Code:         spec.Code,
			Class:        class,
			Name:         spec.Name,
			Description:  spec.Description,
			Severity:     sev,
			Enabled:      enabled,
			Source: Source{
				Name: spec.Source.Name,
				Link: normalizeNull(spec.Source.Link),
			},
		}
		if seen[r.ID()] {
			return nil, fmt.Errorf("%w: duplicate rule id %s", ErrConfigParse, r.ID())
		}
		seen[r.ID()] = true
		catalog = append(catalog, r)
	}

	return catalog, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, name)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, name, err)
	}
	return nil
}

// normalizeNull treats the literal string "null" the same as an absent value.
func normalizeNull(s string) string {
	if s == "null" {
		return ""
	}
	return s
}
