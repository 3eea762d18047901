// Package concurrency provides named in-process locks.
package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are account IDs: holding an
// account's lock makes the holder the only writer acting for that account
// in this process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Acquire locks key and returns the matching unlock
func (lm *LockManager) Acquire(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}
