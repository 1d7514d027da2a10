package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestLockSerialisesSameKey(t *testing.T) {
	l := New()
	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(SessionKey("cust-1", "shop-1"))
			defer unlock()
			n := inside.Inc()
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Dec()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Zero(t, l.Len())
}

func TestLockDifferentKeysDoNotBlock(t *testing.T) {
	l := New()
	unlockA := l.Lock(SessionKey("a", "shop-1"))
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock(SessionKey("b", "shop-1"))
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another key blocked")
	}
}

func TestUnlockTwiceIsSafe(t *testing.T) {
	l := New()
	unlock := l.Lock("k")
	unlock()
	unlock()
	assert.Zero(t, l.Len())
}
