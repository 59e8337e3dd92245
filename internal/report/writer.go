package report

import (
	"io"

	"github.com/platescan/platescan/internal/model"
)

// Writer renders audit reports to a destination.
//
// Design decision: An interface so the CLI can pick a format at
// runtime and tests can render into a buffer.
type Writer interface {
	// Write renders the report. Returns the number of bytes written
	// and any error encountered.
	Write(report *model.AuditReport) (int, error)
}

// baseWriter provides the shared output destination.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter for the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
