// Package cli wires together the Cobra command tree for the aegis binary.
//
// It defines the root command and all subcommands (scan, rules, providers,
// files, config, version), binds flags, merges configuration, drives the
// scan pipeline, and returns deterministic exit codes for CI gating.
package cli
