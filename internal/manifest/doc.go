// Package manifest locates and parses the project manifest (aegis.toml),
// which carries project-level overrides for the rule catalog and provider
// registry.
//
// Discovery walks upward from the working directory until a manifest is
// found. A missing manifest yields an empty override set rather than an
// error; an unparseable manifest is fatal.
package manifest
