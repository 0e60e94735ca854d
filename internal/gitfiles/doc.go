// Package gitfiles discovers the files a scan should cover.
//
// With no explicit targets, it lists git-tracked files and keeps those with
// known code extensions. Explicit file targets are taken as-is; directory
// targets are walked recursively for code files. A missing explicit target
// is an error.
package gitfiles
