package scan

import (
	"time"

	"github.com/google/uuid"

	"github.com/aegisml/aegis/internal/rules"
)

// AuditConfig records the effective rule configuration of a scan: which
// rules ran, which were disabled, and the overrides as merged at load time.
// The override map is the one passed into the load step, not a
// recomputation, so callers can round-trip it.
type AuditConfig struct {
	RulesEnabled  []string        `json:"rules_enabled"`
	RulesDisabled []string        `json:"rules_disabled"`
	RuleOverrides rules.Overrides `json:"rule_overrides"`
}

// Report is the complete result of one scan. Assembled once, write-once.
type Report struct {
	Tool        string         `json:"tool"`
	Version     string         `json:"version"`
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     map[string]int `json:"summary"`
	Findings    []Finding      `json:"findings"`
	Config      AuditConfig    `json:"config"`
}

// ReportVersion is the report schema version.
const ReportVersion = "1.0"

// AssembleReport combines outcomes, the effective catalog, and the applied
// overrides into the final report object. Serialization is the caller's
// concern.
func AssembleReport(outcomes []RuleOutcome, catalog []rules.Rule, overrides rules.Overrides) *Report {
	findings := Aggregate(outcomes)
	if findings == nil {
		findings = []Finding{}
	}

	enabled := make([]string, 0, len(catalog))
	disabled := make([]string, 0)
	for _, r := range catalog {
		if r.Enabled {
			enabled = append(enabled, r.ID())
		} else {
			disabled = append(disabled, r.ID())
		}
	}
	if overrides == nil {
		overrides = rules.Overrides{}
	}

	return &Report{
		Tool:        "aegis",
		Version:     ReportVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     Summarize(findings),
		Findings:    findings,
		Config: AuditConfig{
			RulesEnabled:  enabled,
			RulesDisabled: disabled,
			RuleOverrides: overrides,
		},
	}
}
