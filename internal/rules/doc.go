// Package rules defines the AI-safety rule catalog: rule classes, rules,
// per-scan rule configuration, and the override merge applied from a project
// manifest.
//
// The base catalog ships inside the binary as embedded YAML
// (config/rule_configuration.yaml for rule classes, config/rules.yaml for the
// rules themselves). A rule's identity is "{organization}-{code}" and must be
// unique across the catalog; a rule referencing an undefined rule class is a
// fatal load error.
//
// Overrides may change only a rule's enabled state and severity. Overrides
// for unknown rule IDs are ignored so that a stale manifest entry never
// aborts a scan; an unknown severity string is fatal.
package rules
