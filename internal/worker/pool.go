// Package worker runs background maintenance jobs off the request path.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/Huanyu_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs are logged under their name
type Named interface {
	Name() string
}

// Pool represents a worker pool
type Pool struct {
	workers    int
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	jobTimeout time.Duration
	log        *slog.Logger
}

// NewPool creates a new worker pool. Each job runs under jobTimeout; zero
// means DefaultJobTimeout.
func NewPool(workers, queueSize int, jobTimeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
		jobTimeout: jobTimeout,
		log:        slog.Default().With("component", "worker"),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	log := p.log.With("job", jobName(job))
	ctx, cancel := context.WithTimeout(logger.WithLogger(context.Background(), log), p.jobTimeout)
	defer cancel()

	if err := job.Process(ctx); err != nil {
		// a failed job never takes the worker down
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue hands job to the pool without blocking. It reports false when the
// queue is full or the pool is stopping; the job is dropped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		p.log.Warn(LogMsgWorkerQueueFull, "job", jobName(job))
		return false
	}
}

// Stop stops the workers and waits for running jobs to finish. Queued jobs
// that have not started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}

func jobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return UnnamedJob
}
