// Package worker runs independent network annotations concurrently.
// Each job owns its network, so parallel execution shares no mutable
// state and per-network output stays deterministic.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool executes jobs with bounded concurrency, preserving input order
// in the returned results.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in input order. A
// cancelled context stops unstarted jobs; running jobs observe the
// cancellation through their own context use.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			results[i] = cancelled{ctx.Err()}
			continue
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(idx int, j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = j.Execute(ctx)
		}(i, job)
	}

	wg.Wait()
	return results
}

type cancelled struct{ err error }

func (c cancelled) Err() error { return c.err }
