// Package util provides generic concurrency helpers shared by the command
// line layer.
package util

import (
	"context"
	"runtime"
	"sync"
)

// ConcurrentMapSlice applies mapFunc to every item using a bounded worker
// pool, preserving input order in the results. It returns the context error
// when cancelled before completion.
func ConcurrentMapSlice[T any, R any](ctx context.Context, items []T, mapFunc func(T) R) ([]R, error) {
	var wg sync.WaitGroup

	results := make([]R, len(items))

	maxWorkers := runtime.NumCPU()
	semaphore := make(chan struct{}, maxWorkers)

	for i, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer func() { <-semaphore }()

			results[i] = mapFunc(item)
		}(i, item)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return results, nil
}
