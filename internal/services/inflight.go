package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

type inflightKey struct {
	customerID uuid.UUID
	productID  int64
}

type inflightEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// inflightRegistry serializes workflows per (customer, product). Entries
// exist only while at least one caller holds or waits for them.
type inflightRegistry struct {
	mu      sync.Mutex
	entries map[inflightKey]*inflightEntry
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{entries: make(map[inflightKey]*inflightEntry)}
}

// acquire blocks until the key is free or ctx is done. The returned
// function must be called exactly once to release the key.
func (r *inflightRegistry) acquire(ctx context.Context, customerID uuid.UUID, productID int64) (func(), error) {
	key := inflightKey{customerID: customerID, productID: productID}

	r.mu.Lock()
	entry, ok := r.entries[key]
	if !ok {
		entry = &inflightEntry{sem: semaphore.NewWeighted(1)}
		r.entries[key] = entry
	}
	entry.refs++
	r.mu.Unlock()

	if err := entry.sem.Acquire(ctx, 1); err != nil {
		r.unref(key, entry)
		return nil, err
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			r.unref(key, entry)
		})
	}, nil
}

func (r *inflightRegistry) unref(key inflightKey, entry *inflightEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(r.entries, key)
	}
}

// size is the number of live keys.
func (r *inflightRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
