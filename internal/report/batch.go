package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"reportgen/internal/model"
)

// GenerateAll generates every request with at most concurrency writes in
// flight and returns the written paths in request order.
//
// All paths are resolved first; requests that share a resolved path are
// rejected with ErrDuplicatePath before anything is written. After the first
// failure, requests that have not started yet are skipped and that failure
// is returned. Reports already written are left in place.
func (g *Generator) GenerateAll(ctx context.Context, reqs []*model.Request, concurrency int) ([]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	seen := make(map[string]int, len(reqs))
	for i, req := range reqs {
		path, err := g.ResolvePath(req)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		if prev, ok := seen[path]; ok {
			return nil, fmt.Errorf("%w: requests %d and %d both write %s", ErrDuplicatePath, prev, i, path)
		}
		seen[path] = i
	}

	g.logger.Info().
		Int("reports", len(reqs)).
		Int("concurrency", concurrency).
		Msg("starting batch generation")

	paths := make([]string, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, req := range reqs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			path, err := g.Generate(req)
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, req.Filename, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Info().Int("reports", len(reqs)).Msg("batch generation completed")
	return paths, nil
}
