package report

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueFull signals that the report queue cannot accept more work right
// now. Callers surface it instead of silently dropping the job.
var ErrQueueFull = errors.New("report queue is full")

// WorkerPool runs report generation jobs on a bounded set of workers. Jobs
// are identified by report id; the bounded queue gives explicit
// backpressure and Shutdown drains whatever has been accepted.
type WorkerPool struct {
	jobs   chan string
	run    func(ctx context.Context, reportID string)
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	logger *slog.Logger
}

func NewWorkerPool(workers, queueSize int, run func(ctx context.Context, reportID string)) *WorkerPool {
	p := &WorkerPool{
		jobs:   make(chan string, queueSize),
		run:    run,
		logger: slog.Default().With("component", "report.pool"),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for reportID := range p.jobs {
		p.run(context.Background(), reportID)
	}
}

// Submit enqueues a report job. It returns ErrQueueFull when the queue is
// at capacity and ErrQueueClosed after Shutdown.
func (p *WorkerPool) Submit(reportID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.jobs <- reportID:
		p.logger.Debug("report job enqueued", "reportId", reportID)
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for queued work to finish.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("report worker pool drained")
}
