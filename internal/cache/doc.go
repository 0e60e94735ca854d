// Package cache provides a file-based cache for agent analysis responses.
//
// Entries are keyed by a SHA-256 hash of the full analysis prompt, which is
// deterministic for identical rule batches and file sets. Each entry stores
// the structured analysis JSON with a creation timestamp and TTL; expired
// entries are skipped on read and removed during clear operations.
package cache
