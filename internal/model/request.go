// Package model defines the data structures shared by the report generator,
// its encoders and the command line tool.
package model

// Request describes a single report to generate.
type Request struct {
	// Filename is the base name of the file to write. It is used as-is;
	// no extension is derived from Format.
	Filename string

	// Directory is an optional subdirectory below the generator root.
	// It is created if it does not exist.
	Directory string

	// Format is a MIME-like "<type>/<subtype>" string. Only the subtype
	// selects the encoder (csv, html, json, pdf, text).
	Format string

	// Result is the value to serialize.
	Result Result
}
