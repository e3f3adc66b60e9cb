package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a caller passes workers <= 0.
const DefaultWorkers = 8

// Map runs fn for every item with at most `workers` calls in flight.
// Results and errors are indexed like items; one failing item never stops the others.
// Items not started before ctx is done get ctx.Err() as their error.
func Map[T any, R any](
	ctx context.Context,
	items []T,
	workers int,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = fn(ctx, i, item)
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

// FirstError returns the first non-nil error in index order.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
