// Package fetcher retrieves a single page of raw markup over a
// time-bounded HTTP call and measures how long the retrieval took.
// It is the only pipeline stage whose failure aborts an audit.
package fetcher
