package ingest

import (
	"context"
	"errors"
	"sync"
)

// Job is a unit of work submitted to the pool.
type Job func(ctx context.Context) error

// ErrPoolClosed is returned when Submit is attempted after Close.
var ErrPoolClosed = errors.New("ingest: worker pool closed")

// WorkerPool runs jobs on a fixed number of goroutines. Lookups are short
// and CPU-light, so a small pool keeps a whole article's sentences moving
// without swamping the store.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int

	closeMu sync.RWMutex
	closed  bool
}

// NewWorkerPool creates a pool with the given worker count and queue depth.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
	}
}

// Start launches the workers; they drain jobs until ctx is done or Close is
// called.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					_ = job(ctx) // job errors are reported through the job's own channels
				}
			}
		}()
	}
}

// Submit enqueues a job, blocking while the queue is full. Returns
// ErrPoolClosed after Close, or the context error if ctx ends first.
// The read lock is held through the send so Close cannot close the channel
// out from under a blocked sender.
func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Close stops accepting jobs and waits for the workers to finish the queue.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}
