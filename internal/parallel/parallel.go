// Package parallel applies a function to every element of a slice on a
// bounded pool of goroutines.
package parallel

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// Workers resolves a configured pool size; n <= 0 means one worker per
// available CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Map calls fn on each input using at most workers goroutines and returns the
// results in input order. The first error cancels the context passed to tasks
// that have not finished and is returned with no results. A panicking task is
// reported as an error.
func Map[T, R any](ctx context.Context, workers int, inputs []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(workers))

	for i, in := range inputs {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = eris.Errorf("parallel: task %d panicked: %v", i, r)
				}
			}()

			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "parallel: cancelled")
			}

			out, err := fn(gctx, in)
			if err != nil {
				return eris.Wrap(err, fmt.Sprintf("parallel: task %d", i))
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MapPure is Map for functions that cannot fail.
func MapPure[T, R any](ctx context.Context, workers int, inputs []T, fn func(T) R) ([]R, error) {
	return Map(ctx, workers, inputs, func(_ context.Context, in T) (R, error) {
		return fn(in), nil
	})
}
