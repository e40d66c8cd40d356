package scheduler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ParallelFor calls fn(i) for every i in [begin, end), grouping consecutive
// indices into chunks of grain size and running one goroutine per chunk,
// bounded to GOMAXPROCS concurrent chunks. It returns the first error any
// call to fn returns, cancelling the rest. grain <= 0 is treated as 1.
func ParallelFor(ctx context.Context, begin, end, grain int, fn func(i int) error) error {
	if end <= begin {
		return nil
	}
	if grain <= 0 {
		grain = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

	for chunkStart := begin; chunkStart < end; chunkStart += grain {
		chunkStart := chunkStart
		chunkEnd := chunkStart + grain
		if chunkEnd > end {
			chunkEnd = end
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			for i := chunkStart; i < chunkEnd; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// ParallelSum is ParallelFor's reduction counterpart: fn(i) contributes a
// partial sum for index i, and ParallelSum returns the total across
// [begin, end), chunked the same way. The partial sums are accumulated
// per-chunk (no shared mutable state between goroutines) and combined after
// every chunk completes, so the result is deterministic regardless of
// goroutine scheduling order.
func ParallelSum(ctx context.Context, begin, end, grain int, fn func(i int) float64) (float64, error) {
	if end <= begin {
		return 0, nil
	}
	if grain <= 0 {
		grain = 1
	}

	chunkCount := (end - begin + grain - 1) / grain
	partials := make([]float64, chunkCount)

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

	for chunkIdx, chunkStart := 0, begin; chunkStart < end; chunkIdx, chunkStart = chunkIdx+1, chunkStart+grain {
		chunkIdx, chunkStart := chunkIdx, chunkStart
		chunkEnd := chunkStart + grain
		if chunkEnd > end {
			chunkEnd = end
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			var sum float64
			for i := chunkStart; i < chunkEnd; i++ {
				sum += fn(i)
			}
			partials[chunkIdx] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, p := range partials {
		total += p
	}
	return total, nil
}
