// Aegis is a CLI that scans source code for AI safety issues.
//
// It checks files against a rule catalog covering instruction override
// handling, model provider hygiene, data minimization, and prompt safety,
// delegating the analysis itself to an LLM agent equipped with read, parse,
// and search tools. Findings are emitted as structured reports with
// deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	aegis scan                  # scan git-tracked code files
//	aegis scan src/ main.py     # scan explicit targets
//	aegis rules list            # show the effective rule catalog
//	aegis providers list        # show the provider safety registry
//	aegis files                 # show what a scan would cover
//
// Rule and provider overrides are read from an aegis.toml manifest found by
// walking upward from the working directory.
package main
