// Package providers holds the model-provider safety registry: each provider's
// safety level and the lifecycle of its model identifiers (live, legacy,
// deprecated).
//
// The base registry ships as embedded YAML (config/providers.yaml) and is
// loaded once per scan. Project manifests may override a provider's safety
// level or replace its model lists. A model identifier may appear in at most
// one lifecycle bucket per provider; the registry is read-only once dispatch
// begins.
package providers
