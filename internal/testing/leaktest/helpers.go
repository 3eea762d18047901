// Package leaktest checks that code under test gives back every goroutine it
// starts, such as flow goroutines in coordinator races or shutdown waiters.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	pollInterval   = 10 * time.Millisecond
	defaultTimeout = 2 * time.Second
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	before  int
	t       testing.TB
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		before:  runtime.NumGoroutine(),
		t:       t,
		timeout: defaultTimeout,
	}
}

// Check polls until at most tolerance goroutines remain above the baseline
// and fails the test when they are still there after the timeout
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if !settle(g.before+tolerance, g.timeout) {
		after := runtime.NumGoroutine()
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, after-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires the goroutine count to return to
// where it started
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle reports whether the goroutine count dropped to target in time
func settle(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
