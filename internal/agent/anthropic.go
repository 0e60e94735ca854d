package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aegisml/aegis/internal/agenttools"
	"github.com/aegisml/aegis/internal/scan"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"

	maxResponseTokens = 8192
	// maxToolRounds bounds the tool-use loop for one batch call.
	maxToolRounds = 24
)

// New creates an Agent by provider name.
func New(provider, model string, tools *agenttools.Registry, log *zap.Logger) (scan.Agent, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model, tools, log)
	default:
		return nil, fmt.Errorf("unknown agent provider: %s", provider)
	}
}

// Anthropic runs analysis through Anthropic's messages API.
type Anthropic struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	tools   *agenttools.Registry
	// toolDefs is built once at construction and reused on every request.
	toolDefs []anthropicTool
	log      *zap.Logger
}

// NewAnthropic creates an Anthropic-backed agent. The API key comes from
// ANTHROPIC_API_KEY; AEGIS_AGENT_BASE_URL overrides the endpoint for
// API-compatible local servers.
func NewAnthropic(model string, tools *agenttools.Registry, log *zap.Logger) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, &authError{message: "ANTHROPIC_API_KEY environment variable is not set"}
	}
	baseURL := anthropicAPIURL
	if v := os.Getenv("AEGIS_AGENT_BASE_URL"); v != "" {
		baseURL = v
	}
	if log == nil {
		log = zap.NewNop()
	}
	a := &Anthropic{
		apiKey:  key,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 300 * time.Second},
		tools:   tools,
		log:     log,
	}
	for _, t := range tools.Tools() {
		a.toolDefs = append(a.toolDefs, anthropicTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return a, nil
}

// Run submits one analysis prompt and drives the tool-use loop until the
// model produces a final answer. The returned Outcome carries a structured
// Analysis when the answer conforms to the schema, or the raw text when it
// does not.
func (a *Anthropic) Run(ctx context.Context, prompt string) (scan.Outcome, error) {
	messages := []anthropicMessage{
		{Role: "user", Content: []contentBlock{{Type: "text", Text: prompt}}},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.send(ctx, messages)
		if err != nil {
			return scan.Outcome{}, err
		}

		if resp.StopReason != "tool_use" {
			var text string
			for _, block := range resp.Content {
				if block.Type == "text" {
					text += block.Text
				}
			}
			return parseOutcome(text), nil
		}

		// Execute requested tools and feed results back.
		messages = append(messages, anthropicMessage{Role: "assistant", Content: resp.Content})
		var results []contentBlock
		for _, block := range resp.Content {
			if block.Type != "tool_use" {
				continue
			}
			a.log.Debug("agent tool call", zap.String("tool", block.Name))
			result, err := a.tools.Call(ctx, block.Name, block.Input)
			rb := contentBlock{Type: "tool_result", ToolUseID: block.ID}
			if err != nil {
				rb.Content = fmt.Sprintf("tool error: %v", err)
				rb.IsError = true
			} else {
				data, merr := json.Marshal(result)
				if merr != nil {
					rb.Content = fmt.Sprintf("tool error: %v", merr)
					rb.IsError = true
				} else {
					rb.Content = string(data)
				}
			}
			results = append(results, rb)
		}
		messages = append(messages, anthropicMessage{Role: "user", Content: results})
	}

	return scan.Outcome{}, fmt.Errorf("analysis did not converge within %d tool rounds", maxToolRounds)
}

func (a *Anthropic) send(ctx context.Context, messages []anthropicMessage) (*anthropicResponse, error) {
	body := anthropicRequest{
		Model:     a.model,
		MaxTokens: maxResponseTokens,
		System:    scan.SystemPrompt(),
		Tools:     a.toolDefs,
		Messages:  messages,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var result anthropicResponse
	err = retryWithBackoff(ctx, 3, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", a.apiKey)
		httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

		httpResp, err := a.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		switch {
		case httpResp.StatusCode == http.StatusTooManyRequests:
			return &rateLimitError{}
		case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
			return &authError{message: string(respBody)}
		case httpResp.StatusCode != http.StatusOK:
			return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
		}

		if err := json.Unmarshal(respBody, &result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

type contentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

type anthropicMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
