package core

import (
	"context"
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

// WorkerPool runs index ranges across a bounded number of goroutines. A pool
// with one worker runs everything inline on the calling goroutine.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// ParallelFor executes a function in parallel for a range of values.
// This is a convenience wrapper around ParallelForWithContext using context.Background().
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext executes a function in parallel for a range of values
// with cancellation support via context. It returns once every started chunk
// has finished.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	chunkSize := max(1, (end-start)/wp.numWorkers)
	wp.Batches(ctx, start, end, chunkSize, func(from, to int) {
		for j := from; j < to; j++ {
			select {
			case <-ctx.Done():
				return
			default:
				fn(j)
			}
		}
	})
}

// Batches splits [start, end) into batches of batchSize and hands each to fn.
// At most GetNumWorkers batches run at once.
func (wp *WorkerPool) Batches(ctx context.Context, start, end, batchSize int, fn func(from, to int)) {
	if start >= end || ctx.Err() != nil {
		return
	}
	batchSize = max(1, batchSize)

	// Single worker or a single batch: no goroutines at all
	if wp.numWorkers == 1 || end-start <= batchSize {
		fn(start, end)
		return
	}

	swg := sizedwaitgroup.New(wp.numWorkers)
	for i := start; i < end; i += batchSize {
		if ctx.Err() != nil {
			break
		}
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}
		from, to := i, min(i+batchSize, end)
		go func() {
			defer swg.Done()
			fn(from, to)
		}()
	}
	swg.Wait()
}

// ParallelMap applies fn to every item using the pool and returns the results
// in input order together with the first error encountered, if any.
func ParallelMap[T any, R any](wp *WorkerPool, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	wp.ParallelFor(0, len(items), func(i int) {
		results[i], errs[i] = fn(items[i])
	})
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
