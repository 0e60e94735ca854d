package agent

import (
	"encoding/json"
	"strings"

	"github.com/aegisml/aegis/internal/scan"
)

// parseOutcome interprets the model's final text. Markdown code fences are
// stripped before parsing. Text that does not decode into the analysis
// schema is returned as an unstructured outcome rather than an error; the
// orchestrator recovers from it per batch.
func parseOutcome(text string) scan.Outcome {
	cleaned := stripFences(strings.TrimSpace(text))

	var analysis scan.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil || analysis.RuleResults == nil {
		return scan.Outcome{Raw: text}
	}
	return scan.Outcome{Analysis: &analysis}
}

func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
