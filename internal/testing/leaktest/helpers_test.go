package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures Errorf instead of failing the real test
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) { r.failed = true }

func TestCheckNoGoroutineLeak_JoinedWorkers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestGoroutineChecker_LateExitIsNotALeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	go func() { time.Sleep(30 * time.Millisecond) }()
	checker.Check(0)
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	checker := NewGoroutineChecker(t)
	go func() { <-done }()
	checker.Check(1)
}

// CASE 2: WORST CASE - a blocked goroutine is reported
func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)
	checker.timeout = 50 * time.Millisecond
	go func() { <-done }()
	checker.Check(0)

	assert.True(t, rec.failed)
}
