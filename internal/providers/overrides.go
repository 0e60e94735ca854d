package providers

import "fmt"

// ModelOverride replaces one or more of a provider's model lists. A nil list
// leaves the base list untouched.
type ModelOverride struct {
	Live       []string    `toml:"live"`
	Deprecated []ModelSpec `toml:"deprecated"`
	Legacy     []ModelSpec `toml:"legacy"`
}

// Override is a project-supplied change to one provider's registry entry.
type Override struct {
	SafetyLevel string         `toml:"safety_level"`
	Models      *ModelOverride `toml:"models"`
}

// Overrides maps provider names to the override to apply.
type Overrides map[string]Override

// Apply merges overrides into the registry in place. Overrides naming an
// unknown provider are ignored, matching the rule-override policy.
func Apply(cfg *Config, overrides Overrides) error {
	for name, ov := range overrides {
		info, ok := cfg.Providers[name]
		if !ok {
			continue
		}
		if ov.SafetyLevel != "" {
			info.SafetyLevel = SafetyLevel(ov.SafetyLevel)
		}
		if ov.Models != nil {
			if ov.Models.Live != nil {
				info.Models.Live = ov.Models.Live
			}
			if ov.Models.Deprecated != nil {
				deprecated, err := resolveModelSpecs(ov.Models.Deprecated)
				if err != nil {
					return fmt.Errorf("provider %s override: %w", name, err)
				}
				info.Models.Deprecated = deprecated
			}
			if ov.Models.Legacy != nil {
				legacy, err := resolveModelSpecs(ov.Models.Legacy)
				if err != nil {
					return fmt.Errorf("provider %s override: %w", name, err)
				}
				info.Models.Legacy = legacy
			}
		}
		if err := validateLifecycle(info.Models); err != nil {
			return fmt.Errorf("provider %s override: %w", name, err)
		}
		cfg.Providers[name] = info
	}
	return nil
}

// LoadWithOverrides loads the embedded base registry and applies overrides.
func LoadWithOverrides(overrides Overrides) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := Apply(cfg, overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}
