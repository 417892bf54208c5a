package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingJob struct {
	counter *atomic.Int64
	fail    bool
}

type countingResult struct {
	err error
}

func (r countingResult) GetError() error { return r.err }

func (j countingJob) Execute(ctx context.Context) Result {
	if ctx.Err() != nil {
		return countingResult{err: ctx.Err()}
	}
	j.counter.Add(1)
	if j.fail {
		return countingResult{err: errors.New("job failed")}
	}
	return countingResult{}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(context.Background(), 4)
	pool.Start()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(countingJob{counter: &counter})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("got %d results, want %d", len(results), jobs)
	}
	if counter.Load() != jobs {
		t.Errorf("executed %d jobs, want %d", counter.Load(), jobs)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(countingJob{counter: &counter, fail: true})
	pool.Submit(countingJob{counter: &counter})

	results := pool.Wait()
	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(context.Background(), 0)
	pool.Start()
	pool.Submit(countingJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestPoolCancelledParentDropsSubmissions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter atomic.Int64
	pool := NewPool(ctx, 2)
	pool.Start()
	pool.Submit(countingJob{counter: &counter})
	pool.Shutdown()

	if counter.Load() != 0 {
		t.Errorf("executed %d jobs after cancellation, want 0", counter.Load())
	}
}
