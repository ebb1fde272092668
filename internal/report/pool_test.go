package report

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestWorkerPoolRunsSubmittedJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	pool := NewWorkerPool(2, 8, func(ctx context.Context, reportID string) {
		mu.Lock()
		seen[reportID] = true
		mu.Unlock()
	})

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := pool.Submit(id); err != nil {
			t.Fatalf("Submit(%s) error = %v", id, err)
		}
	}
	pool.Shutdown()

	if len(seen) != 3 {
		t.Errorf("ran %d jobs, want 3", len(seen))
	}
}

func TestWorkerPoolQueueFull(t *testing.T) {
	pool := NewWorkerPool(0, 1, func(ctx context.Context, reportID string) {})

	if err := pool.Submit("r1"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := pool.Submit("r2"); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Submit() error = %v, want %v", err, ErrQueueFull)
	}
	pool.Shutdown()
}

func TestWorkerPoolRejectsAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1, 1, func(ctx context.Context, reportID string) {})
	pool.Shutdown()

	if err := pool.Submit("r1"); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Submit() error = %v, want %v", err, ErrQueueClosed)
	}
	// Shutdown is safe to call twice.
	pool.Shutdown()
}
