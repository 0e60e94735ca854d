package scan

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aegisml/aegis/internal/rules"
)

// Violation is a single rule violation reported by the agent. The file and
// line fields are optional in the wire format; missing or malformed values
// are defaulted during reconciliation (file to the batch's first path, line
// to 1).
type Violation struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// UnmarshalJSON tolerates line numbers sent as JSON numbers, numeric
// strings, or omitted entirely.
func (v *Violation) UnmarshalJSON(data []byte) error {
	var raw struct {
		File    string          `json:"file"`
		Line    json.RawMessage `json:"line"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.File = raw.File
	v.Message = raw.Message
	v.Line = coerceLine(raw.Line)
	return nil
}

func coerceLine(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 1
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n >= 1 {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

// RuleResult is the agent's verdict for one rule within a batch response.
type RuleResult struct {
	RuleID      string      `json:"rule_id"`
	Applies     bool        `json:"applies"`
	Violations  []Violation `json:"violations"`
	Reasoning   string      `json:"reasoning"`
	Remediation string      `json:"remediation,omitempty"`
}

// Analysis is the structured response for one batch: exactly one RuleResult
// per rule sent, plus overall reasoning.
type Analysis struct {
	RuleResults      []RuleResult `json:"rule_results"`
	OverallReasoning string       `json:"overall_reasoning"`
}

// Outcome is what an Agent returns: either a structured Analysis or, when
// the agent produced something the schema cannot describe, the raw text.
type Outcome struct {
	Analysis *Analysis
	Raw      string
}

// Agent is the external analysis capability. Implementations submit the
// prompt with a fixed tool set and return a structured or unstructured
// outcome. The same Agent value is shared by all concurrent batch
// dispatches; its tool registration happens once at construction.
type Agent interface {
	Run(ctx context.Context, prompt string) (Outcome, error)
}

// Finding is a located, attributed violation of a rule. Findings are created
// only during reconciliation and are immutable afterwards.
type Finding struct {
	RuleID      string         `json:"rule_id"`
	RuleName    string         `json:"rule_name"`
	Severity    rules.Severity `json:"severity"`
	File        string         `json:"file"`
	Line        int            `json:"line"`
	Message     string         `json:"message"`
	Reasoning   string         `json:"reasoning"`
	Remediation string         `json:"remediation,omitempty"`
}

// CheckResult is the reconciled outcome of checking one rule across the
// batch's files.
type CheckResult struct {
	Applies   bool      `json:"applies"`
	Findings  []Finding `json:"findings"`
	Reasoning string    `json:"reasoning"`
}

// RuleOutcome pairs a rule with its check result.
type RuleOutcome struct {
	Rule   rules.Rule
	Result CheckResult
}
