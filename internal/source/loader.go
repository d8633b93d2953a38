// Package source loads the result values reports are generated from.
// A location is either empty (no result), "-" for standard input, an
// http(s) URL, or a local file path.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"reportgen/internal/config"
	"reportgen/internal/model"
)

// Stdin is the location that reads the result from standard input.
const Stdin = "-"

// Loader reads and parses report input.
type Loader struct {
	httpClient *resty.Client
	fs         afero.Fs
	stdin      io.Reader
	logger     zerolog.Logger
}

// LoaderOption is a functional option for configuring a Loader.
type LoaderOption func(*Loader)

// WithFs sets the filesystem local paths are read from.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithStdin sets the reader used for the "-" location.
func WithStdin(r io.Reader) LoaderOption {
	return func(l *Loader) {
		l.stdin = r
	}
}

// NewLoader creates a Loader. cfg may be nil, in which case a 30s timeout
// and 3 retries with a 1s base delay are used.
func NewLoader(cfg *config.InputConfig, logger zerolog.Logger, opts ...LoaderOption) *Loader {
	timeout := 30 * time.Second
	retry := config.RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
	}
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		retry = cfg.Retry
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5").
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(retry.BaseDelay).
		SetRetryMaxWaitTime(retry.BaseDelay * 8). // Max wait time for exponential backoff
		AddRetryCondition(retryCondition)

	l := &Loader{
		httpClient: httpClient,
		fs:         afero.NewOsFs(),
		stdin:      os.Stdin,
		logger:     logger.With().Str("component", "source-loader").Logger(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// retryCondition retries on transport errors and 5xx responses only.
func retryCondition(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode() >= 500
}

// Load reads the result stored at location.
// YAML is detected by a .yaml/.yml extension or a YAML content type;
// everything else is parsed as JSON.
func (l *Loader) Load(ctx context.Context, location string) (model.Result, error) {
	switch {
	case location == "":
		return model.NoResult(), nil
	case location == Stdin:
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return model.Result{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return parse(data, false)
	case isURL(location):
		return l.loadURL(ctx, location)
	default:
		data, err := afero.ReadFile(l.fs, location)
		if err != nil {
			return model.Result{}, fmt.Errorf("failed to read input file: %w", err)
		}
		return parse(data, hasYAMLExt(location))
	}
}

// loadURL fetches location over HTTP.
func (l *Loader) loadURL(ctx context.Context, location string) (model.Result, error) {
	l.logger.Debug().Str("url", location).Msg("fetching report input")

	resp, err := l.httpClient.R().
		SetContext(ctx).
		Get(location)
	if err != nil {
		l.logger.Error().Err(err).Str("url", location).Msg("failed to fetch report input")
		return model.Result{}, fmt.Errorf("failed to fetch %s: %w", location, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		l.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("url", location).
			Msg("input endpoint returned non-2xx status")
		return model.Result{}, fmt.Errorf("input endpoint returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	yamlInput := strings.Contains(resp.Header().Get("Content-Type"), "yaml")
	if u, err := url.Parse(location); err == nil && hasYAMLExt(u.Path) {
		yamlInput = true
	}

	l.logger.Debug().
		Str("url", location).
		Int("bytes", len(resp.Body())).
		Msg("report input fetched")

	return parse(resp.Body(), yamlInput)
}

func parse(data []byte, yamlInput bool) (model.Result, error) {
	if yamlInput {
		return model.ParseYAMLResult(data)
	}
	return model.ParseResult(data)
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func hasYAMLExt(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
