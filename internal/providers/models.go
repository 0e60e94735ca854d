package providers

import (
	"sort"
	"time"
)

// SafetyLevel classifies a provider's safety posture.
type SafetyLevel string

const (
	SafetySafe      SafetyLevel = "safe"
	SafetyWorrying  SafetyLevel = "worrying"
	SafetyDangerous SafetyLevel = "dangerous"
)

// DeprecatedModel describes a model identifier that is deprecated or legacy.
type DeprecatedModel struct {
	ModelID         string     `json:"model_id"`
	DeprecationDate *time.Time `json:"deprecation_date,omitempty"`
	RetirementDate  *time.Time `json:"retirement_date,omitempty"`
	Replacement     string     `json:"replacement,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// ModelConfig holds a provider's model identifiers by lifecycle stage.
type ModelConfig struct {
	Live       []string          `json:"live"`
	Legacy     []DeprecatedModel `json:"legacy"`
	Deprecated []DeprecatedModel `json:"deprecated"`
}

// Info describes a single provider.
type Info struct {
	Provider    string      `json:"provider"`
	SafetyLevel SafetyLevel `json:"safety_level"`
	Models      ModelConfig `json:"models"`
}

// Config is the full provider registry keyed by provider name.
type Config struct {
	Providers map[string]Info `json:"providers"`
}

// SafeProviders returns the sorted names of providers classified as safe.
func (c *Config) SafeProviders() []string {
	return c.byLevel(SafetySafe)
}

// WorryingProviders returns the sorted names of providers classified as worrying.
func (c *Config) WorryingProviders() []string {
	return c.byLevel(SafetyWorrying)
}

// DangerousProviders returns the sorted names of providers classified as dangerous.
func (c *Config) DangerousProviders() []string {
	return c.byLevel(SafetyDangerous)
}

func (c *Config) byLevel(level SafetyLevel) []string {
	var names []string
	for name, info := range c.Providers {
		if info.SafetyLevel == level {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DeprecatedModels returns the deprecated models for a provider, or nil if
// the provider is unknown.
func (c *Config) DeprecatedModels(provider string) []DeprecatedModel {
	if info, ok := c.Providers[provider]; ok {
		return info.Models.Deprecated
	}
	return nil
}

// LegacyModels returns the legacy models for a provider, or nil if the
// provider is unknown.
func (c *Config) LegacyModels(provider string) []DeprecatedModel {
	if info, ok := c.Providers[provider]; ok {
		return info.Models.Legacy
	}
	return nil
}
