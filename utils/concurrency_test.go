package utils

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	var ran int64

	for i := 0; i < 50; i++ {
		pool.Submit(func() error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		t.Fatalf("Wait: unexpected error %v", err)
	}
	if ran != 50 {
		t.Errorf("ran: got %d, want 50", ran)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := NewWorkerPool(workers)
	var active, peak int64

	for i := 0; i < 10; i++ {
		pool.Submit(func() error {
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
			return nil
		})
	}
	_ = pool.Wait()

	if peak > workers {
		t.Errorf("peak concurrency: got %d, want <= %d", peak, workers)
	}
}

func TestWorkerPoolKeepsFirstError(t *testing.T) {
	pool := NewWorkerPool(1)
	first := errors.New("first")

	pool.Submit(func() error { return first })
	pool.Submit(func() error { return errors.New("second") })

	if err := pool.Wait(); !errors.Is(err, first) {
		t.Errorf("Wait: got %v, want %v", err, first)
	}
}

func TestWorkerPoolZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	done := false
	pool.Submit(func() error { done = true; return nil })
	_ = pool.Wait()
	if !done {
		t.Error("job did not run with maxWorkers=0")
	}
}
