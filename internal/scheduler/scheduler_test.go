package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Huanyu_Go/internal/worker"
)

// countingJob signals every run
type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (m *countingJob) Process(ctx context.Context) error {
	m.runs.Add(1)
	select {
	case m.done <- struct{}{}:
	default:
	}
	return nil
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(job worker.Job) bool {
	return m.Called(job).Bool(0)
}

// CASE 1: BEST CASE - a started scheduler keeps enqueueing
func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)
	sched.Start()

	timeout := time.After(time.Second)
	for seen := 0; seen < 2; {
		select {
		case <-job.done:
			seen++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}
	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

// CASE 3: EDGE CASE - nothing runs before Start
func TestScheduler_WaitsForStart(t *testing.T) {
	q := &mockEnqueuer{}
	sched := New(q)
	sched.Schedule(5*time.Millisecond, &countingJob{})

	time.Sleep(30 * time.Millisecond)
	sched.Stop()
	q.AssertNotCalled(t, "Enqueue", mock.Anything)
}

// CASE 2: WORST CASE - a refusing pool does not stop the ticker
func TestScheduler_PoolRefuses(t *testing.T) {
	q := &mockEnqueuer{}
	var calls atomic.Int32
	q.On("Enqueue", mock.Anything).Return(false).Run(func(mock.Arguments) { calls.Add(1) })

	sched := New(q)
	sched.Start()
	sched.Schedule(5*time.Millisecond, &countingJob{})

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	sched.Stop()
	sched.Stop()
	sched.Start()
}
