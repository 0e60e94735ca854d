// Package agenttools implements the tool capabilities exposed to the
// analysis agent: reading files, summarizing source syntax, and searching
// for patterns, each in single-file and batch form.
//
// Batch tools silently skip individual files that cannot be read or parsed
// so that one bad file never aborts a whole batch call. File content
// returned by the read tools carries "N: " line-number prefixes and passes
// through secret redaction first.
package agenttools
