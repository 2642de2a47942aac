package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testResult struct {
	id  int
	err error
}

func (r testResult) Err() error { return r.err }

type testJob struct {
	id      int
	execute func(ctx context.Context, id int) Result
}

func (j testJob) Execute(ctx context.Context) Result {
	return j.execute(ctx, j.id)
}

func TestPool_Run_PreservesInputOrder(t *testing.T) {
	pool := NewPool(4)

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = testJob{id: i, execute: func(ctx context.Context, id int) Result {
			// Later jobs finish first.
			time.Sleep(time.Duration(10-id) * time.Millisecond)
			return testResult{id: id}
		}}
	}

	results := pool.Run(context.Background(), jobs)

	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	for i, r := range results {
		if r.(testResult).id != i {
			t.Errorf("result %d out of order: got job %d", i, r.(testResult).id)
		}
	}
}

func TestPool_Run_BoundsConcurrency(t *testing.T) {
	pool := NewPool(2)

	var running, peak int32
	var mu sync.Mutex

	jobs := make([]Job, 8)
	for i := range jobs {
		jobs[i] = testJob{id: i, execute: func(ctx context.Context, id int) Result {
			n := atomic.AddInt32(&running, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return testResult{id: id}
		}}
	}

	pool.Run(context.Background(), jobs)

	if peak > 2 {
		t.Errorf("expected at most 2 concurrent jobs, saw %d", peak)
	}
}

func TestPool_Run_CancelledContext(t *testing.T) {
	pool := NewPool(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{
		testJob{id: 0, execute: func(ctx context.Context, id int) Result {
			return testResult{id: id}
		}},
	}

	results := pool.Run(ctx, jobs)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !errors.Is(results[0].Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err())
	}
}

func TestPool_Run_FailedJobDoesNotStopOthers(t *testing.T) {
	pool := NewPool(2)

	boom := errors.New("boom")
	jobs := []Job{
		testJob{id: 0, execute: func(ctx context.Context, id int) Result {
			return testResult{id: id, err: boom}
		}},
		testJob{id: 1, execute: func(ctx context.Context, id int) Result {
			return testResult{id: id}
		}},
	}

	results := pool.Run(context.Background(), jobs)

	if !errors.Is(results[0].Err(), boom) {
		t.Errorf("expected first job's error, got %v", results[0].Err())
	}
	if results[1].Err() != nil {
		t.Errorf("second job should succeed, got %v", results[1].Err())
	}
}

func TestNewPool_ClampsWorkerCount(t *testing.T) {
	pool := NewPool(0)

	jobs := []Job{
		testJob{id: 0, execute: func(ctx context.Context, id int) Result {
			return testResult{id: id}
		}},
	}

	results := pool.Run(context.Background(), jobs)
	if len(results) != 1 || results[0].Err() != nil {
		t.Errorf("zero-worker pool should still run jobs: %v", results)
	}
}
