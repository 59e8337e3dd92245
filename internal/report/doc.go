// Package report renders audit reports for CLI output, in JSON for
// tool integration or Markdown for humans. The HTTP API serializes
// the report model directly and does not go through this package.
package report
