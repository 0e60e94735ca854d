package providers

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var baseConfig embed.FS

// Sentinel errors for registry loading.
var (
	ErrConfigNotFound = errors.New("provider config file not found")
	ErrConfigParse    = errors.New("provider config parse error")
)

const providersFile = "config/providers.yaml"

// ModelSpec is the raw form of a deprecated/legacy model entry as written in
// configuration. Dates use the YYYY-MM-DD layout; an empty string or the
// literal "null" means absent.
type ModelSpec struct {
	ModelID         string `yaml:"model_id" toml:"model_id"`
	DeprecationDate string `yaml:"deprecation_date" toml:"deprecation_date"`
	RetirementDate  string `yaml:"retirement_date" toml:"retirement_date"`
	Replacement     string `yaml:"replacement" toml:"replacement"`
	Notes           string `yaml:"notes" toml:"notes"`
}

type providerDoc struct {
	Providers map[string]struct {
		SafetyLevel string `yaml:"safety_level"`
		Models      struct {
			Live       []string    `yaml:"live"`
			Deprecated []ModelSpec `yaml:"deprecated"`
			Legacy     []ModelSpec `yaml:"legacy"`
		} `yaml:"models"`
	} `yaml:"providers"`
}

// Load returns the embedded base provider registry.
func Load() (*Config, error) {
	return LoadFS(baseConfig)
}

// LoadFS loads the provider registry from fsys, which must contain
// config/providers.yaml.
func LoadFS(fsys fs.FS) (*Config, error) {
	data, err := fs.ReadFile(fsys, providersFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, providersFile)
	}
	var doc providerDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, providersFile, err)
	}

	cfg := &Config{Providers: make(map[string]Info, len(doc.Providers))}
	for name, p := range doc.Providers {
		level := SafetyLevel(p.SafetyLevel)
		if level == "" {
			level = SafetySafe
		}
		deprecated, err := resolveModelSpecs(p.Models.Deprecated)
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: %v", ErrConfigParse, name, err)
		}
		legacy, err := resolveModelSpecs(p.Models.Legacy)
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: %v", ErrConfigParse, name, err)
		}
		info := Info{
			Provider:    name,
			SafetyLevel: level,
			Models: ModelConfig{
				Live:       p.Models.Live,
				Deprecated: deprecated,
				Legacy:     legacy,
			},
		}
		if err := validateLifecycle(info.Models); err != nil {
			return nil, fmt.Errorf("%w: provider %s: %v", ErrConfigParse, name, err)
		}
		cfg.Providers[name] = info
	}
	return cfg, nil
}

// resolveModelSpecs converts raw entries into typed records.
func resolveModelSpecs(specs []ModelSpec) ([]DeprecatedModel, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	models := make([]DeprecatedModel, 0, len(specs))
	for _, s := range specs {
		depDate, err := parseDate(s.DeprecationDate)
		if err != nil {
			return nil, fmt.Errorf("model %s: deprecation_date: %v", s.ModelID, err)
		}
		retDate, err := parseDate(s.RetirementDate)
		if err != nil {
			return nil, fmt.Errorf("model %s: retirement_date: %v", s.ModelID, err)
		}
		models = append(models, DeprecatedModel{
			ModelID:         s.ModelID,
			DeprecationDate: depDate,
			RetirementDate:  retDate,
			Replacement:     normalizeNull(s.Replacement),
			Notes:           normalizeNull(s.Notes),
		})
	}
	return models, nil
}

// validateLifecycle enforces that a model id appears in at most one of
// live/deprecated/legacy.
func validateLifecycle(mc ModelConfig) error {
	seen := make(map[string]string)
	record := func(id, bucket string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("model %s listed in both %s and %s", id, prev, bucket)
		}
		seen[id] = bucket
		return nil
	}
	for _, id := range mc.Live {
		if err := record(id, "live"); err != nil {
			return err
		}
	}
	for _, m := range mc.Deprecated {
		if err := record(m.ModelID, "deprecated"); err != nil {
			return err
		}
	}
	for _, m := range mc.Legacy {
		if err := record(m.ModelID, "legacy"); err != nil {
			return err
		}
	}
	return nil
}

// parseDate parses a YYYY-MM-DD date. Empty and the literal "null" both mean
// absent and yield nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

func normalizeNull(s string) string {
	if s == "null" {
		return ""
	}
	return s
}
