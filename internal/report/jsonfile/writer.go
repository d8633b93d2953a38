// Package jsonfile writes a report result as compact JSON text.
// It backs the json subtype as well as html, pdf and text, which currently
// all store the raw result as JSON rather than format-specific markup.
package jsonfile

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"reportgen/internal/model"
)

const filePerm os.FileMode = 0o644

// Writer implements report.ReportWriter by dumping the result as JSON.
type Writer struct {
	fs     afero.Fs
	format string
}

// NewWriter creates a JSON dump writer registered under the given format key.
// If fs is nil, the OS filesystem is used.
func NewWriter(fs afero.Fs, format string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{
		fs:     fs,
		format: format,
	}
}

// Format returns the format key for this writer.
func (w *Writer) Format() string {
	return w.format
}

// Write serializes result and replaces the content of outputPath with it.
// An absent result is written as null.
func (w *Writer) Write(result model.Result, outputPath string) error {
	data, err := model.EncodeJSON(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := afero.WriteFile(w.fs, outputPath, data, filePerm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
