// Package batch runs independent comparisons on a bounded worker pool.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most workers calls in flight and
// returns the results in input order. The first error cancels the context
// passed to the remaining calls and is returned.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
