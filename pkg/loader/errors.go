package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInputs is returned when input expansion finds no supported file.
	ErrNoInputs = errors.New("no supported input files found (expect .csv/.md/.markdown)")

	// ErrNoTable is returned for a Markdown file without a dictionary table.
	ErrNoTable = errors.New("no markdown table with code and object_type columns")

	// ErrUnsupportedFormat is returned for a file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrNoSource is returned when neither paths nor a DSN were given.
	ErrNoSource = errors.New("no input paths or database DSN given")
)

// SourceError reports a failure to read one input.
type SourceError struct {
	Source string // File path or redacted DSN
	Line   int    // 1-based line, 0 when not applicable
	Op     string // What was being done, e.g. "open", "read header"
	Err    error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Source, e.Line, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(source string, line int, op string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Line:   line,
		Op:     op,
		Err:    err,
	}
}
