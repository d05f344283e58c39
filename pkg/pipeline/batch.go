package pipeline

import (
	"context"
	"sync"
)

// BatchResult pairs one batch input with its pipeline outcome.
type BatchResult struct {
	// Input is the path or URL the result belongs to.
	Input string

	// Result is the pipeline output; nil when Err is set.
	Result *Result

	// Err is the failure for this input, if any. One failing input
	// never aborts the others.
	Err error
}

// RunBatch executes the full pipeline for many inputs concurrently with a
// bounded worker pool. Each input is a local path or remote URL; the
// remaining options are shared across the batch. Results come back in
// input order regardless of completion order.
//
// The layout engine is stateless per call, so workers share nothing but
// the runner's cache. workers <= 0 falls back to DefaultBatchWorkers.
func (r *Runner) RunBatch(ctx context.Context, inputs []string, opts Options, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]BatchResult, len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.runOne(ctx, inputs[i], opts)
			}
		}()
	}

	for i := range inputs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = BatchResult{Input: inputs[i], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Runner) runOne(ctx context.Context, input string, opts Options) BatchResult {
	// Each job gets its own options copy; Execute mutates defaults.
	jobOpts := opts
	jobOpts.Path = input
	jobOpts.URL = ""
	jobOpts.validated = false

	res, err := r.Execute(ctx, jobOpts)
	return BatchResult{Input: input, Result: res, Err: err}
}
