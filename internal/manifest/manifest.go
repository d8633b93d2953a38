// Package manifest reads batch manifests describing several reports to
// generate in one run.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"reportgen/internal/config"
	"reportgen/internal/model"
)

// Manifest is the root of a batch manifest file.
//
//	reports:
//	  - filename: hosts.csv
//	    directory: daily/2024-06-01
//	    format: text/csv
//	    input: ./hosts.json
type Manifest struct {
	Reports []Entry `yaml:"reports" validate:"min=1,dive"`
}

// Entry describes one report of a batch.
type Entry struct {
	Filename  string `yaml:"filename" validate:"required"`
	Directory string `yaml:"directory"`
	Format    string `yaml:"format" validate:"required,media_type"`
	Input     string `yaml:"input"` // Location passed to source.Loader; empty means no result. Relative paths are relative to the manifest file
}

// Request converts the entry to a report request carrying result.
func (e Entry) Request(result model.Result) *model.Request {
	return &model.Request{
		Filename:  e.Filename,
		Directory: e.Directory,
		Format:    e.Format,
		Result:    result,
	}
}

// Load reads and validates the manifest at path. Relative input file paths
// are resolved against the directory containing the manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	m.resolveInputs(filepath.Dir(path))
	return m, nil
}

// resolveInputs joins relative input file paths onto baseDir. Empty inputs,
// stdin ("-") and http(s) URLs are left untouched.
func (m *Manifest) resolveInputs(baseDir string) {
	for i := range m.Reports {
		input := m.Reports[i].Input
		switch {
		case input == "", input == "-":
		case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		case filepath.IsAbs(input):
		default:
			m.Reports[i].Input = filepath.Join(baseDir, input)
		}
	}
}

// Parse decodes and validates a YAML manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := config.NewValidator().Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", config.TranslateErrors(err))
	}

	return &m, nil
}
