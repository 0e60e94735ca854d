package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aegisml/aegis/internal/cache"
	"github.com/aegisml/aegis/internal/providers"
	"github.com/aegisml/aegis/internal/rules"
)

// Orchestrator drives the batch dispatch pipeline. The agent and provider
// registry are fixed at construction; nothing shared is mutated during
// dispatch, so concurrent batches need no locking.
type Orchestrator struct {
	agent       Agent
	providerCfg *providers.Config
	cache       *cache.Cache
	log         *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProviderConfig supplies the provider safety registry used for prompt
// context on model-provider rules.
func WithProviderConfig(cfg *providers.Config) Option {
	return func(o *Orchestrator) { o.providerCfg = cfg }
}

// WithCache enables replay of identical batch requests from a response cache.
func WithCache(c *cache.Cache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// New creates an Orchestrator around the given agent.
func New(agent Agent, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		agent: agent,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// pair couples a rule with its per-scan configuration.
type pair struct {
	rule rules.Rule
	cfg  rules.Config
}

// Dispatch checks every enabled rule against every existing path and returns
// exactly one outcome per enabled rule, in the enabled rules' input order.
//
// Rules are batched by organization and every batch is dispatched
// concurrently; one batch means one atomic agent call. A batch whose call
// fails or whose response is unstructured yields fallback results for all of
// its rules instead of an error, so Dispatch completes for every batch or
// not at all. An empty enabled-rule set or an empty existing-path set is a
// valid scan and returns no outcomes.
func (o *Orchestrator) Dispatch(ctx context.Context, catalog []rules.Rule, cfgs []rules.Config, paths []string) ([]RuleOutcome, error) {
	if len(catalog) != len(cfgs) {
		return nil, fmt.Errorf("rule/config mismatch: %d rules, %d configs", len(catalog), len(cfgs))
	}

	var enabled []pair
	for i := range catalog {
		if catalog[i].Enabled && cfgs[i].Enabled {
			enabled = append(enabled, pair{rule: catalog[i], cfg: cfgs[i]})
		}
	}
	existing := existingPaths(paths)
	if len(enabled) == 0 || len(existing) == 0 {
		o.log.Info("nothing to dispatch",
			zap.Int("enabled_rules", len(enabled)),
			zap.Int("existing_paths", len(existing)))
		return nil, nil
	}

	// Partition by organization, preserving first-seen order.
	batches := make(map[string][]pair)
	var order []string
	for _, p := range enabled {
		org := p.rule.Organization
		if _, ok := batches[org]; !ok {
			order = append(order, org)
		}
		batches[org] = append(batches[org], p)
	}

	o.log.Info("dispatching analysis batches",
		zap.Int("rules", len(enabled)),
		zap.Int("files", len(existing)),
		zap.Int("batches", len(order)))

	// Fan-out: one task per organization, all awaited jointly. Batch
	// failures are converted to fallback results inside dispatchBatch, so
	// the group never propagates an error.
	resultsByOrg := make(map[string]map[string]CheckResult, len(order))
	g, gctx := errgroup.WithContext(ctx)
	for _, org := range order {
		org := org
		members := batches[org]
		resultsByOrg[org] = make(map[string]CheckResult, len(members))
		byID := resultsByOrg[org]
		g.Go(func() error {
			o.dispatchBatch(gctx, org, members, existing, byID)
			return nil
		})
	}
	_ = g.Wait()

	// Merge, correlated one-to-one with the input enabled-rule order.
	outcomes := make([]RuleOutcome, 0, len(enabled))
	for _, p := range enabled {
		outcomes = append(outcomes, RuleOutcome{
			Rule:   p.rule,
			Result: resultsByOrg[p.rule.Organization][p.rule.ID()],
		})
	}
	return outcomes, nil
}

// dispatchBatch runs one organization's batch and writes a CheckResult for
// every member rule into byID. byID is owned by this batch's task until
// Dispatch's wait completes.
func (o *Orchestrator) dispatchBatch(ctx context.Context, org string, members []pair, paths []string, byID map[string]CheckResult) {
	batchRules := make([]rules.Rule, len(members))
	batchCfgs := make([]rules.Config, len(members))
	for i, p := range members {
		batchRules[i] = p.rule
		batchCfgs[i] = p.cfg
	}

	prompt := BuildPrompt(batchRules, batchCfgs, paths, o.providerCfg)

	analysis, err := o.runAnalysis(ctx, org, prompt)
	if err != nil {
		o.log.Warn("analysis request failed, synthesizing fallback results",
			zap.String("organization", org), zap.Error(err))
		for _, p := range members {
			byID[p.rule.ID()] = fallbackResult(fmt.Sprintf("analysis request failed: %v", err))
		}
		return
	}

	byRuleID := make(map[string]RuleResult, len(analysis.RuleResults))
	for _, rr := range analysis.RuleResults {
		byRuleID[rr.RuleID] = rr
	}

	for _, p := range members {
		rr, ok := byRuleID[p.rule.ID()]
		if !ok {
			// The agent skipped this rule; keep the output complete.
			byID[p.rule.ID()] = fallbackResult(fmt.Sprintf("no analysis result found for %s", p.rule.ID()))
			continue
		}
		byID[p.rule.ID()] = reconcile(p.rule, p.cfg, rr, paths)
	}
}

// runAnalysis performs the single atomic agent call for a batch, consulting
// the response cache first. An unstructured outcome counts as a failure.
func (o *Orchestrator) runAnalysis(ctx context.Context, org string, prompt string) (*Analysis, error) {
	if o.cache != nil {
		if data, ok := o.cache.Get(prompt); ok {
			var cached Analysis
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				o.log.Debug("batch served from cache", zap.String("organization", org))
				return &cached, nil
			}
		}
	}

	outcome, err := o.agent.Run(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if outcome.Analysis == nil {
		return nil, fmt.Errorf("unstructured agent response: %s", truncate(outcome.Raw, 200))
	}

	if o.cache != nil {
		if data, err := json.Marshal(outcome.Analysis); err == nil {
			if err := o.cache.Put(prompt, string(data)); err != nil {
				o.log.Debug("cache write failed", zap.Error(err))
			}
		}
	}
	return outcome.Analysis, nil
}

// reconcile converts one rule's raw result into a CheckResult, attributing
// each violation to a concrete file path.
func reconcile(rule rules.Rule, cfg rules.Config, rr RuleResult, paths []string) CheckResult {
	known := make(map[string]bool, len(paths))
	for _, p := range paths {
		known[p] = true
	}

	findings := make([]Finding, 0, len(rr.Violations))
	for _, v := range rr.Violations {
		file := v.File
		if file == "" || !known[file] {
			// Unattributable violations fall back to the batch's first
			// path. Lossy, but a finding is never dropped.
			file = paths[0]
		}
		line := v.Line
		if line < 1 {
			line = 1
		}
		message := v.Message
		if message == "" {
			message = rule.Description
		}
		findings = append(findings, Finding{
			RuleID:      rule.ID(),
			RuleName:    rule.Name,
			Severity:    cfg.Severity,
			File:        file,
			Line:        line,
			Message:     message,
			Reasoning:   rr.Reasoning,
			Remediation: rr.Remediation,
		})
	}

	return CheckResult{
		Applies:   rr.Applies,
		Findings:  findings,
		Reasoning: rr.Reasoning,
	}
}

func fallbackResult(reasoning string) CheckResult {
	return CheckResult{
		Applies:   false,
		Findings:  []Finding{},
		Reasoning: reasoning,
	}
}

func existingPaths(paths []string) []string {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	return existing
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
