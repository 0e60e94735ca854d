package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the severity level assigned to a rule and its findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ErrInvalidSeverity is returned when a severity string cannot be mapped to a
// known level.
var ErrInvalidSeverity = errors.New("invalid severity")

// ParseSeverity maps a string to a Severity, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}

// Class is a category grouping related rules, such as input/output handling
// or model provider usage. Classes are immutable once loaded and shared by
// reference across the rules that cite them.
type Class struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ClassModelProvider is the class ID whose rules require provider safety
// context in analysis prompts.
const ClassModelProvider = "MP"

// Source records where a rule's guidance originates.
type Source struct {
	Name string `json:"name" yaml:"name"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Rule is a single AI-safety check. Rules are read-only during dispatch;
// only the override merge may change Enabled and Severity.
type Rule struct {
	Organization string   `json:"organization"`
	Code         string   `json:"code"`
	Class        Class    `json:"rule_class"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Severity     Severity `json:"severity"`
	Enabled      bool     `json:"enabled"`
	Source       Source   `json:"source"`
}

// ID returns the derived rule identifier "{organization}-{code}".
func (r Rule) ID() string {
	return r.Organization + "-" + r.Code
}

// Config is the per-scan view of a rule: the same catalog can be reused
// across scans with different effective configurations.
type Config struct {
	RuleID   string   `json:"rule_id"`
	Enabled  bool     `json:"enabled"`
	Severity Severity `json:"severity"`
}

// Configs derives one Config per rule, mirroring each rule's current
// enabled state and severity.
func Configs(catalog []Rule) []Config {
	cfgs := make([]Config, len(catalog))
	for i, r := range catalog {
		cfgs[i] = Config{
			RuleID:   r.ID(),
			Enabled:  r.Enabled,
			Severity: r.Severity,
		}
	}
	return cfgs
}
