// Package csvfile writes a sequence of uniform records as delimited text.
package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/afero"

	"reportgen/internal/model"
)

const (
	filePerm os.FileMode = 0o644

	// NoResults is the whole file content written for an empty record sequence.
	NoResults = "No Results Found"
)

// Writer implements report.ReportWriter for CSV format.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a new CSV report writer.
// If fs is nil, the OS filesystem is used.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// Format returns the format key for this writer.
func (w *Writer) Format() string {
	return "csv"
}

// Write writes result as CSV to outputPath, replacing any existing file.
// The header is taken from the keys of the first record, in order; each
// following line holds one record. An empty sequence produces NoResults.
//
// Fields are quoted when they contain a comma, a double quote or a line
// break, and also when they start with whitespace, so leading spaces
// survive a round trip through readers that trim unquoted fields.
func (w *Writer) Write(result model.Result, outputPath string) error {
	records, err := result.Records()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		if err := afero.WriteFile(w.fs, outputPath, []byte(NoResults), filePerm); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil
	}

	header := records[0].Keys()

	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		row := make([]string, len(header))
		for col, key := range header {
			value, _ := rec.Get(key)
			cell, err := formatCell(value)
			if err != nil {
				return fmt.Errorf("failed to format record %d column %q: %w", i, key, err)
			}
			row[col] = cell
		}
		rows = append(rows, row)
	}

	file, err := w.fs.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// formatCell renders a single value as CSV cell text.
// Nested objects and arrays are written as compact JSON.
func formatCell(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), nil
	default:
		data, err := model.EncodeJSON(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
