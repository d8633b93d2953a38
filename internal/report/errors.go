package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned when a request is missing required fields.
	ErrInvalidRequest = errors.New("invalid report request")

	// ErrDuplicatePath is returned by GenerateAll when two requests resolve
	// to the same output file.
	ErrDuplicatePath = errors.New("duplicate report path")
)

// UnsupportedFormatError is returned when a format has no registered writer.
// Callers should fix the request rather than retry it.
type UnsupportedFormatError struct {
	Format    string   // Format string as given by the caller
	Key       string   // Parsed subtype; empty when Format has no "/"
	Supported []string // Registered format keys
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid report format %q: expected <type>/<subtype>, supported subtypes: %s",
			e.Format, strings.Join(e.Supported, ", "))
	}
	return fmt.Sprintf("unsupported report format %q, supported formats: %s",
		e.Key, strings.Join(e.Supported, ", "))
}

// DirectoryError records a failure to create the output directory.
// Generate delivers it wrapped in a *WriteError.
type DirectoryError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a writer fails to serialize or store a report.
// A partially written file may remain at Path.
type WriteError struct {
	Path   string
	Format string
	Err    error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s report %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
