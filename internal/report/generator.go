package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"reportgen/internal/model"
)

const dirPerm os.FileMode = 0o755

// Generator turns report requests into files below a fixed root directory.
// It keeps no per-request state, so a single Generator may be reused and
// called from multiple goroutines. Requests that resolve to the same path
// race; the last write wins.
type Generator struct {
	root     string
	fs       afero.Fs
	registry *Registry
	logger   zerolog.Logger
}

// GeneratorOption is a functional option for configuring a Generator.
type GeneratorOption func(*Generator)

// WithFs sets the filesystem the generator creates directories and files on.
func WithFs(fs afero.Fs) GeneratorOption {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithRegistry replaces the default writer registry.
func WithRegistry(r *Registry) GeneratorOption {
	return func(g *Generator) {
		g.registry = r
	}
}

// NewGenerator creates a Generator writing below root. A relative root is
// made absolute against the current working directory; an empty root means
// the current working directory. The root itself is not created.
func NewGenerator(root string, logger zerolog.Logger, opts ...GeneratorOption) (*Generator, error) {
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory %s: %w", root, err)
	}

	g := &Generator{
		root:   absRoot,
		logger: logger.With().Str("component", "report-generator").Logger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.registry == nil {
		g.registry = NewRegistry(g.fs)
	}

	return g, nil
}

// Root returns the absolute root directory.
func (g *Generator) Root() string {
	return g.root
}

// Formats returns the supported format keys in sorted order.
func (g *Generator) Formats() []string {
	return g.registry.GetAll()
}

// ResolvePath returns the absolute path a request will be written to:
// root, the optional directory and the filename joined together.
// It has no side effects.
func (g *Generator) ResolvePath(req *model.Request) (string, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.Filename == "" {
		return "", fmt.Errorf("%w: filename is required", ErrInvalidRequest)
	}

	if req.Directory != "" {
		return filepath.Join(g.root, req.Directory, req.Filename), nil
	}
	return filepath.Join(g.root, req.Filename), nil
}

// Generate writes the request's result to its resolved path and returns that
// path. An existing file is overwritten.
//
// The format is checked before anything touches the filesystem: an unknown
// subtype returns an *UnsupportedFormatError. Storage failures return a
// *WriteError: a failure to create the requested directory wraps a
// *DirectoryError and is returned before any write is attempted. Partially written
// files are not removed.
func (g *Generator) Generate(req *model.Request) (string, error) {
	outputPath, err := g.ResolvePath(req)
	if err != nil {
		g.logger.Error().Err(err).Msg("invalid report request")
		return "", err
	}

	logger := g.logger.With().
		Str("filename", req.Filename).
		Str("format", req.Format).
		Logger()

	logger.Info().Msg("received report request")

	writer, err := g.registry.Resolve(req.Format)
	if err != nil {
		logger.Error().Err(err).Msg("unsupported report format")
		return "", err
	}

	if req.Directory != "" {
		dir := filepath.Join(g.root, req.Directory)
		if err := g.fs.MkdirAll(dir, dirPerm); err != nil {
			logger.Error().Err(err).Str("directory", dir).Msg("failed to create report directory")
			return "", &WriteError{
				Path:   outputPath,
				Format: writer.Format(),
				Err:    &DirectoryError{Path: dir, Err: err},
			}
		}
	}

	logger.Info().Str("path", outputPath).Msg("generating report")

	if err := writer.Write(req.Result, outputPath); err != nil {
		logger.Error().Err(err).Str("path", outputPath).Msg("failed to write report")
		return "", &WriteError{Path: outputPath, Format: writer.Format(), Err: err}
	}

	logger.Info().Str("path", outputPath).Msg("report written successfully")
	return outputPath, nil
}
