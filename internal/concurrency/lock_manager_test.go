package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestAcquire_SerializesOneKey(t *testing.T) {
	lm := NewLockManager()
	const workers = 50

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := lm.Acquire("account")
			defer release()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}
