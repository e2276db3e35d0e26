package compose

import (
	"context"
	"sync"
)

// Task is a unit of work producing a value of type T.
type Task[T any] func(ctx context.Context) (T, error)

// Parallel starts every task in its own goroutine and waits for all of
// them. On success the result holds one entry per input key. If any task
// fails, Parallel still waits for the others and then returns the first
// error it observed.
func Parallel[T any](ctx context.Context, tasks map[string]Task[T]) (map[string]T, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		results  = make(map[string]T, len(tasks))
	)

	for key, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := task(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[key] = value
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// ParallelRecord runs tasks like Parallel and returns the results as a
// Record, ready to be returned from a Sequence stage.
func ParallelRecord[T any](ctx context.Context, tasks map[string]Task[T]) (Record, error) {
	results, err := Parallel(ctx, tasks)
	if err != nil {
		return nil, err
	}
	record := make(Record, len(results))
	for key, value := range results {
		record[key] = value
	}
	return record, nil
}
