package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store holds the counting buckets for one limiter backend.
//
// Increment bumps the counter for key inside the current fixed window,
// resetting the bucket first when the window has elapsed, and returns the
// post-increment count together with the wall-clock instant the window ends.
// Increments must be atomic with respect to concurrent requests for the same
// key; a lost update would let a client exceed its quota.
//
// Decrement undoes one increment. It is used by policies that exclude
// successful requests from the count.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
	Decrement(ctx context.Context, key string) error
}

type bucket struct {
	count       int64
	windowStart time.Time
}

// MemoryStore is the in-process Store. Buckets live for the process
// lifetime; nothing survives a restart.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	// now is swappable for window-expiry tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Increment implements Store under a single mutex, which makes the
// read-reset-increment sequence atomic for concurrent requests.
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, ok := s.buckets[key]
	if !ok || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		s.buckets[key] = b
	}

	b.count++
	return b.count, b.windowStart.Add(window), nil
}

// Decrement implements Store. Decrementing a missing or empty bucket is a
// no-op: the window may have reset between increment and decrement.
func (s *MemoryStore) Decrement(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[key]; ok && b.count > 0 {
		b.count--
	}
	return nil
}
