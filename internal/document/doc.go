// Package document holds the one structured format the scaffolder can merge:
// JSON objects. Documents are parsed declaratively (never evaluated), keep
// their key order, and carry an optional reserved key listing keys that are
// exempt from merge overwrites.
package document
