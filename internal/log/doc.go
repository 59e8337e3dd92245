// Package log provides a slog handler wrapper that masks credentials
// before records reach the underlying handler, so an API key can
// never leak into server logs through a URL or attribute.
package log
