package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for each element in a separate goroutine, with at most
// workers running at once. A non-positive workers means no limit.
// It waits for all goroutines to finish and returns the first error
// encountered; that error also cancels the context passed to the others.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(context.Context, T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return action(ctx, item)
		})
	}

	return g.Wait()
}

// ParallelMap applies mapFn to each element in parallel, preserving order.
// The workers parameter controls the number of goroutines.
func ParallelMap[T any, R any](ctx context.Context, items []T, workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	indexes := make([]int, len(items))
	for i := range indexes {
		indexes[i] = i
	}

	err := ForEach(ctx, indexes, workers, func(ctx context.Context, i int) error {
		r, err := mapFn(ctx, items[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
