package scan

import "github.com/aegisml/aegis/internal/rules"

// severityRank orders severities for threshold checks.
var severityRank = map[rules.Severity]int{
	rules.SeverityInfo:    1,
	rules.SeverityWarning: 2,
	rules.SeverityError:   3,
}

// MeetsThreshold reports whether sev is at or above the fail-on threshold.
// A threshold of "none" or empty never matches; an unknown threshold is
// treated as "error".
func MeetsThreshold(sev rules.Severity, threshold string) bool {
	if threshold == "" || threshold == "none" {
		return false
	}
	t, err := rules.ParseSeverity(threshold)
	if err != nil {
		t = rules.SeverityError
	}
	return severityRank[sev] >= severityRank[t]
}

// Aggregate flattens findings from all outcomes in result order. Ordering is
// stable: batch order then within-batch rule order, never re-sorted by
// severity or file.
func Aggregate(outcomes []RuleOutcome) []Finding {
	var findings []Finding
	for _, oc := range outcomes {
		findings = append(findings, oc.Result.Findings...)
	}
	return findings
}

// Summarize counts findings by severity. All three buckets are present in
// the result even when zero; severities outside the known set were rejected
// at load time and cannot occur here.
func Summarize(findings []Finding) map[string]int {
	summary := map[string]int{
		string(rules.SeverityError):   0,
		string(rules.SeverityWarning): 0,
		string(rules.SeverityInfo):    0,
	}
	for _, f := range findings {
		summary[string(f.Severity)]++
	}
	return summary
}
