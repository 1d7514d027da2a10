// Package keylock serialises work per string key inside one process
package keylock

import "sync"

// Locker hands out one mutex per key and forgets it once nobody holds or
// waits on it
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New empty Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// SessionKey key of one (customer, retailer) conversation
func SessionKey(customerID, retailerID string) string {
	return retailerID + "\x00" + customerID
}

// Lock blocks until key is free and returns the matching unlock
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// Len keys currently held or waited on
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
