// Package redact removes secrets from file content before it is returned to
// the analysis agent by the read tools.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private key blocks, AWS credentials, bearer tokens, and
// provider-specific token formats. Files whose paths match configured glob
// patterns have their entire content withheld rather than scanned line by
// line.
package redact
