package scan

import (
	"testing"

	"github.com/aegisml/aegis/internal/rules"
)

func TestSummarize(t *testing.T) {
	findings := []Finding{
		{Severity: rules.SeverityError},
		{Severity: rules.SeverityError},
		{Severity: rules.SeverityWarning},
		{Severity: rules.SeverityInfo},
	}
	got := Summarize(findings)
	want := map[string]int{"error": 2, "warning": 1, "info": 1}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("summary[%s] = %d, want %d", k, got[k], v)
		}
	}
}

func TestSummarizeZeroBuckets(t *testing.T) {
	got := Summarize(nil)
	for _, k := range []string{"error", "warning", "info"} {
		if v, ok := got[k]; !ok || v != 0 {
			t.Errorf("summary[%s] = %d (present=%t), want 0 bucket", k, v, ok)
		}
	}
}

func TestAggregateKeepsResultOrder(t *testing.T) {
	outcomes := []RuleOutcome{
		{Result: CheckResult{Findings: []Finding{{RuleID: "A-1"}, {RuleID: "A-2"}}}},
		{Result: CheckResult{Findings: []Finding{{RuleID: "B-1"}}}},
	}
	findings := Aggregate(outcomes)
	want := []string{"A-1", "A-2", "B-1"}
	if len(findings) != len(want) {
		t.Fatalf("got %d findings, want %d", len(findings), len(want))
	}
	for i, id := range want {
		if findings[i].RuleID != id {
			t.Errorf("findings[%d] = %s, want %s", i, findings[i].RuleID, id)
		}
	}
}

func TestMeetsThreshold(t *testing.T) {
	tests := []struct {
		sev       rules.Severity
		threshold string
		want      bool
	}{
		{rules.SeverityError, "error", true},
		{rules.SeverityWarning, "error", false},
		{rules.SeverityWarning, "warning", true},
		{rules.SeverityInfo, "warning", false},
		{rules.SeverityInfo, "info", true},
		{rules.SeverityError, "none", false},
		{rules.SeverityError, "", false},
		{rules.SeverityError, "bogus", true},
		{rules.SeverityInfo, "bogus", false},
	}
	for _, tt := range tests {
		if got := MeetsThreshold(tt.sev, tt.threshold); got != tt.want {
			t.Errorf("MeetsThreshold(%s, %q) = %t, want %t", tt.sev, tt.threshold, got, tt.want)
		}
	}
}
