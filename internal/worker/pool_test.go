package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

// blockingJob holds its worker until release is closed
type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j *blockingJob) Name() string { return "blocking" }

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-j.release
	return nil
}

// CASE 1: BEST CASE - queued jobs all run
func TestPool_RunsJobs(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10, 0)
	pool.Start()

	job := &testJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 },
		time.Second, 5*time.Millisecond)
	pool.Stop()
}

// CASE 2: WORST CASE - a failing job does not stop the worker
func TestPool_FailedJobKeepsWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	require.True(t, pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")}))
	require.True(t, pool.Enqueue(&testJob{executed: &executed}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 },
		time.Second, 5*time.Millisecond)
}

// CASE 3: EDGE CASE - a full queue drops instead of blocking the caller
func TestPool_EnqueueFullQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1, 0)
	pool.Start()

	blocker := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.True(t, pool.Enqueue(blocker))
	<-blocker.started

	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))

	close(blocker.release)
	pool.Stop()
}

// CASE 4: INVALID CASE - enqueue after stop is refused
func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(0, 1, 0)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.Equal(t, int32(0), atomic.LoadInt32(&executed))
}

func TestPool_JobGetsDeadline(t *testing.T) {
	got := make(chan bool, 1)
	pool := NewPool(1, 1, 50*time.Millisecond)
	pool.Start()
	defer pool.Stop()

	require.True(t, pool.Enqueue(jobFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		got <- ok
		return nil
	})))
	assert.True(t, <-got)
}

type jobFunc func(ctx context.Context) error

func (f jobFunc) Process(ctx context.Context) error { return f(ctx) }
