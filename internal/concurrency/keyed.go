package concurrency

import (
	"context"
	"sync"
)

// KeyedMutex serializes work per key, e.g. per user id. Keys never held
// at the same time run in parallel.
type KeyedMutex struct {
	locks sync.Map // map[string]chan struct{}
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// slot returns the one-element semaphore for key
func (m *KeyedMutex) slot(key string) chan struct{} {
	actual, _ := m.locks.LoadOrStore(key, make(chan struct{}, 1))
	return actual.(chan struct{})
}

// Lock blocks until key is acquired or ctx is done.
func (m *KeyedMutex) Lock(ctx context.Context, key string) error {
	select {
	case m.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unlock releases key.
// Safe to call even if the key was never locked or is already released.
func (m *KeyedMutex) Unlock(key string) {
	if actual, ok := m.locks.Load(key); ok {
		select {
		case <-actual.(chan struct{}):
		default:
		}
	}
}
