// Package agent provides the LLM-backed implementation of the analysis
// agent boundary.
//
// An agent is constructed once per scan with its tool set and reused across
// all concurrent batch dispatches; re-registering tools per call conflicts
// when requests run in parallel. The Anthropic implementation drives a
// tool-use loop over the messages API, retries rate limits with exponential
// backoff, never retries authentication errors, and degrades to an
// unstructured outcome when the final response does not conform to the
// analysis schema.
package agent
