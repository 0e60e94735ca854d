package rules

import "fmt"

// Override is a project-supplied change to a single rule. Only the enabled
// state and severity may be overridden. A nil Enabled or empty Severity
// leaves the base value untouched.
type Override struct {
	Enabled  *bool  `json:"enabled,omitempty" toml:"enabled"`
	Severity string `json:"severity,omitempty" toml:"severity"`
}

// Overrides maps rule IDs to the override to apply.
type Overrides map[string]Override

// Apply merges overrides into a copy of the catalog. Overrides keyed by a
// rule ID not present in the catalog are ignored. An override with an
// unknown severity string fails with ErrInvalidSeverity.
func Apply(catalog []Rule, overrides Overrides) ([]Rule, error) {
	merged := make([]Rule, len(catalog))
	copy(merged, catalog)

	if len(overrides) == 0 {
		return merged, nil
	}

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.ID()] = i
	}

	for ruleID, ov := range overrides {
		i, ok := index[ruleID]
		if !ok {
			continue
		}
		if ov.Enabled != nil {
			merged[i].Enabled = *ov.Enabled
		}
		if ov.Severity != "" {
			sev, err := ParseSeverity(ov.Severity)
			if err != nil {
				return nil, fmt.Errorf("override for %s: %w", ruleID, err)
			}
			merged[i].Severity = sev
		}
	}

	return merged, nil
}

// LoadWithOverrides loads the embedded base catalog and applies overrides.
func LoadWithOverrides(overrides Overrides) ([]Rule, error) {
	catalog, err := Load()
	if err != nil {
		return nil, err
	}
	return Apply(catalog, overrides)
}
