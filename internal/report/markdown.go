package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aegisml/aegis/internal/rules"
	"github.com/aegisml/aegis/internal/scan"
)

// MarkdownWriter renders a human-readable report: summary table, effective
// configuration, then findings grouped by severity.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, r *scan.Report) error {
	var sb strings.Builder

	sb.WriteString("# Aegis Scan Report\n\n")
	sb.WriteString(fmt.Sprintf("**Run:** %s  \n", r.RunID))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range []rules.Severity{rules.SeverityError, rules.SeverityWarning, rules.SeverityInfo} {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, r.Summary[string(sev)]))
	}
	sb.WriteString("\n")

	sb.WriteString("## Configuration\n\n")
	sb.WriteString(fmt.Sprintf("- Rules enabled: %d\n", len(r.Config.RulesEnabled)))
	sb.WriteString(fmt.Sprintf("- Rules disabled: %d\n", len(r.Config.RulesDisabled)))
	if len(r.Config.RulesDisabled) > 0 {
		sb.WriteString(fmt.Sprintf("- Disabled: %s\n", strings.Join(r.Config.RulesDisabled, ", ")))
	}
	if len(r.Config.RuleOverrides) > 0 {
		sb.WriteString(fmt.Sprintf("- Overridden: %s\n", strings.Join(overrideIDs(r.Config.RuleOverrides), ", ")))
	}
	sb.WriteString("\n")

	if len(r.Findings) == 0 {
		sb.WriteString("## Findings\n\nNo violations found.\n")
	} else {
		sb.WriteString(fmt.Sprintf("## Findings (%d)\n\n", len(r.Findings)))
		for _, sev := range []rules.Severity{rules.SeverityError, rules.SeverityWarning, rules.SeverityInfo} {
			group := filterBySeverity(r.Findings, sev)
			if len(group) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s (%d)\n\n", severityHeading(sev), len(group)))
			for _, f := range group {
				writeFinding(&sb, f)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFinding(sb *strings.Builder, f scan.Finding) {
	sb.WriteString(fmt.Sprintf("#### %s: %s\n\n", f.RuleID, f.RuleName))
	sb.WriteString(fmt.Sprintf("`%s:%d`\n\n", f.File, f.Line))
	sb.WriteString(f.Message + "\n\n")
	if f.Reasoning != "" {
		sb.WriteString(fmt.Sprintf("**Reasoning:** %s\n\n", f.Reasoning))
	}
	if f.Remediation != "" {
		sb.WriteString(fmt.Sprintf("**Remediation:** %s\n\n", f.Remediation))
	}
}

func filterBySeverity(findings []scan.Finding, sev rules.Severity) []scan.Finding {
	var out []scan.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func severityHeading(sev rules.Severity) string {
	switch sev {
	case rules.SeverityError:
		return "Errors"
	case rules.SeverityWarning:
		return "Warnings"
	default:
		return "Info"
	}
}

func overrideIDs(o rules.Overrides) []string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
