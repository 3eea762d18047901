// Package scheduler enqueues recurring jobs on the worker pool.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/Huanyu_Go/internal/worker"
)

// Enqueuer accepts jobs; *worker.Pool satisfies it
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool    Enqueuer
	entries []entry
	quit    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run every interval once Start is called.
// Jobs scheduled after Start begin immediately.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{interval: interval, job: job}
	s.entries = append(s.entries, e)
	if s.started && !s.stopped {
		s.launch(e)
	}
}

// Start begins ticking every registered job
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.launch(e)
	}
}

// launch must be called with mu held
func (s *Scheduler) launch(e entry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.Enqueue(e.job) {
					slog.Default().Warn(LogMsgTickSkipped, "interval", e.interval)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs; it is safe to call more than once
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.quit)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
