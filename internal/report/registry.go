package report

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"reportgen/internal/report/csvfile"
	"reportgen/internal/report/jsonfile"
)

// Registry manages report writers keyed by format subtype.
type Registry struct {
	writers map[string]ReportWriter
}

// NewRegistry creates a registry with the csv, html, json, pdf and text
// writers registered. All writers store files through fs; if fs is nil,
// the OS filesystem is used.
func NewRegistry(fs afero.Fs) *Registry {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	r := &Registry{
		writers: make(map[string]ReportWriter),
	}

	r.register(csvfile.NewWriter(fs))
	for _, format := range []string{"html", "json", "pdf", "text"} {
		r.register(jsonfile.NewWriter(fs, format))
	}

	return r
}

func (r *Registry) register(w ReportWriter) {
	r.writers[w.Format()] = w
}

// ParseFormat extracts the format key from a "<type>/<subtype>" string.
// Media type parameters are ignored and the key is lowercased, so
// "Text/CSV; charset=utf-8" yields "csv". A format without "/" or with an
// empty subtype is rejected with an *UnsupportedFormatError.
func (r *Registry) ParseFormat(format string) (string, error) {
	mediaType, _, _ := strings.Cut(format, ";")

	_, key, ok := strings.Cut(mediaType, "/")
	key = strings.ToLower(strings.TrimSpace(key))
	if !ok || key == "" {
		return "", &UnsupportedFormatError{Format: format, Supported: r.GetAll()}
	}
	return key, nil
}

// Get returns the writer registered for the format key.
// Keys are case-insensitive. Returns an *UnsupportedFormatError if the key
// is not registered.
func (r *Registry) Get(key string) (ReportWriter, error) {
	normalizedKey := strings.ToLower(strings.TrimSpace(key))

	writer, ok := r.writers[normalizedKey]
	if !ok {
		return nil, &UnsupportedFormatError{Format: key, Key: key, Supported: r.GetAll()}
	}

	return writer, nil
}

// Resolve parses a "<type>/<subtype>" format string and returns its writer.
func (r *Registry) Resolve(format string) (ReportWriter, error) {
	key, err := r.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	writer, err := r.Get(key)
	if err != nil {
		return nil, &UnsupportedFormatError{Format: format, Key: key, Supported: r.GetAll()}
	}
	return writer, nil
}

// GetAll returns all registered format keys in sorted order.
func (r *Registry) GetAll() []string {
	formats := make([]string, 0, len(r.writers))
	for format := range r.writers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Has checks if the format key is registered. Keys are case-insensitive.
func (r *Registry) Has(key string) bool {
	_, ok := r.writers[strings.ToLower(strings.TrimSpace(key))]
	return ok
}
