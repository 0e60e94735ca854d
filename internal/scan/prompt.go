package scan

import (
	"fmt"
	"strings"

	"github.com/aegisml/aegis/internal/providers"
	"github.com/aegisml/aegis/internal/rules"
)

const systemPrompt = `You are an AI safety code analyzer. Your job is to analyze code and determine if AI safety rules apply.

CRITICAL REQUIREMENT: You MUST check ALL provided rules against ALL provided files. Every rule must be checked against every file. This is not optional.

You have access to tools to:
- Read a single file (read_file) or multiple files at once (read_files)
- Parse a single source file to a syntax summary (parse_source) or multiple files (parse_sources)
- Search for a pattern in a single file (search_pattern) or across multiple files (search_patterns)

You decide the best approach, but you MUST ensure:
- ALL provided files are examined
- ALL provided rules are checked against every file
- You provide a result for EVERY rule, even if it does not apply (applies: false)

Respond with ONLY a JSON object of this exact shape. No markdown, no preamble.

{
  "rule_results": [
    {
      "rule_id": "ORG-001",
      "applies": true,
      "violations": [{"file": "path/to/file", "line": 1, "message": "what is wrong"}],
      "reasoning": "why this rule applies or does not",
      "remediation": "suggested fix if applicable"
    }
  ],
  "overall_reasoning": "summary of the analysis across all files"
}

When you read files the content carries line-number prefixes in the form "1: content". Report violation lines using those numbers. Missing violations is worse than false positives.`

// SystemPrompt returns the fixed system prompt for the analysis agent.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt renders the analysis request for one batch of rules against a
// set of file paths. The output is deterministic for identical inputs: rules
// and paths are enumerated in the order given and both counts are stated so
// response coverage can be verified.
//
// When any rule in the batch belongs to the model-provider class, the
// provider safety context from cfg is appended; otherwise it is omitted.
// BuildPrompt never reads the filesystem.
func BuildPrompt(batch []rules.Rule, cfgs []rules.Config, paths []string, cfg *providers.Config) string {
	var b strings.Builder

	b.WriteString("Analyze the following code files to determine which of the AI safety rules apply.\n\n")
	b.WriteString("Code files to analyze:\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	fmt.Fprintf(&b, "\nTotal files: %d\nTotal rules: %d\n\n", len(paths), len(batch))
	fmt.Fprintf(&b, "You MUST check ALL %d rules against ALL %d files.\n\n", len(batch), len(paths))

	b.WriteString("Rules to check:\n")
	for i, r := range batch {
		fmt.Fprintf(&b, "\nRule ID: %s\n", r.ID())
		fmt.Fprintf(&b, "Organization: %s\n", r.Organization)
		fmt.Fprintf(&b, "Name: %s\n", r.Name)
		fmt.Fprintf(&b, "Description: %s\n", r.Description)
		fmt.Fprintf(&b, "Rule Class: %s (%s)\n", r.Class.Name, r.Class.ID)
		fmt.Fprintf(&b, "Severity: %s\n", cfgs[i].Severity)
		fmt.Fprintf(&b, "Source: %s", r.Source.Name)
		if r.Source.Link != "" {
			fmt.Fprintf(&b, " (%s)", r.Source.Link)
		}
		b.WriteString("\n")
	}

	if section := providerContext(batch, cfg); section != "" {
		b.WriteString(section)
	}

	fmt.Fprintf(&b, "\nProvide a separate result for EACH of the %d rules, with rule_id, applies, violations (each with file, line, message), reasoning, and remediation.\n", len(batch))
	b.WriteString("Every violation's file must be one of the paths listed above and its line the 1-based line number where it occurs.\n")

	return b.String()
}

// providerContext renders provider safety levels grouped by classification.
// It returns "" unless the batch contains a model-provider rule and cfg is
// available.
func providerContext(batch []rules.Rule, cfg *providers.Config) string {
	if cfg == nil {
		return ""
	}
	hasMP := false
	for _, r := range batch {
		if r.Class.ID == rules.ClassModelProvider {
			hasMP = true
			break
		}
	}
	if !hasMP {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nProvider and Model Information:\n")
	b.WriteString("This information is relevant for Model Provider (MP) rules.\n\n")
	b.WriteString("Provider Safety Levels:\n")
	if safe := cfg.SafeProviders(); len(safe) > 0 {
		fmt.Fprintf(&b, "  Safe providers: %s\n", strings.Join(safe, ", "))
	}
	if worrying := cfg.WorryingProviders(); len(worrying) > 0 {
		fmt.Fprintf(&b, "  Worrying providers: %s\n", strings.Join(worrying, ", "))
	}
	if dangerous := cfg.DangerousProviders(); len(dangerous) > 0 {
		fmt.Fprintf(&b, "  Dangerous providers: %s\n", strings.Join(dangerous, ", "))
	}
	return b.String()
}
