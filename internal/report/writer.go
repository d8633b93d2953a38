// Package report provides report generation functionality.
// It defines the ReportWriter interface, a registry mapping format keys to
// writers, and the Generator that resolves output paths and dispatches a
// request to the matching writer.
package report

import (
	"reportgen/internal/model"
)

// ReportWriter defines the interface for format-specific report encoders.
type ReportWriter interface {
	// Write serializes result and saves it to outputPath, replacing any
	// existing file. outputPath is used exactly as given.
	//
	// Returns an error if serialization or file writing fails.
	Write(result model.Result, outputPath string) error

	// Format returns the format key for this writer, e.g. "csv" or "json".
	Format() string
}
