// Package scaffold materializes a named template into a destination root. It
// powers the "project init" command: the template tree is walked file by file
// and each file is created, skipped, merged, or overwritten at the matching
// path under the root, with one conflict-resolution context per run.
package scaffold
