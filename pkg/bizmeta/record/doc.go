// Package record defines the canonical in-memory form of a biz_metadata
// dictionary entry and the closed value sets of its enum columns.
//
// Loaders (CSV, Markdown, SQL) normalize raw cells through FromRaw so that
// every gate sees the same representation: surrounding whitespace removed,
// textual nulls ("null", "none", "nan") mapped to empty strings, and an
// unparsable version mapped to 0.
package record
