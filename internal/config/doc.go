// Package config loads and merges aegis tool settings from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (AEGIS_PROVIDER, AEGIS_MODEL, AEGIS_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/aegis/config.json)
//  4. Built-in defaults
//
// Rule and provider overrides are not tool settings; they live in the
// project's aegis.toml manifest.
package config
