// Package cache provides the TTL-keyed in-memory stores the resolver and
// the aggregate endpoints write through. Entries are immutable once written:
// a stale entry is ignored on read, never deleted, and the next successful
// fetch overwrites it wholesale.
package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs, overridable via config. Raw draws and aggregates are both
// short-lived because upstream publishes a new contest most weekdays.
const (
	DefaultDrawTTL      = 120 * time.Second
	DefaultAggregateTTL = 120 * time.Second
)

type entry[T any] struct {
	createdAt time.Time
	payload   T
}

// Store is a TTL-keyed store for one payload type. It is not safe for
// parallel mutation; the process mutates it from a single request loop and
// two concurrent misses doing a redundant fetch is accepted, since
// normalization is idempotent.
type Store[T any] struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

// NewStore creates a store whose entries go stale after ttl.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[T]),
	}
}

// NewStoreWithClock is NewStore with an injected clock, for tests.
func NewStoreWithClock[T any](ttl time.Duration, now func() time.Time) *Store[T] {
	s := NewStore[T](ttl)
	s.now = now
	return s
}

// Get returns the payload for key, or ok=false when absent or stale.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T
	ent, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	if s.now().Sub(ent.createdAt) > s.ttl {
		return zero, false
	}
	return ent.payload, true
}

// Put stores payload under key, replacing any previous entry.
func (s *Store[T]) Put(key string, payload T) {
	s.entries[key] = entry[T]{createdAt: s.now(), payload: payload}
}

// Age returns how long ago the entry for key was written. Stale entries
// still report an age; callers that care about freshness use Get.
func (s *Store[T]) Age(key string) (time.Duration, bool) {
	ent, ok := s.entries[key]
	if !ok {
		return 0, false
	}
	return s.now().Sub(ent.createdAt), true
}

// Key builds a deterministic cache key from an operation name and its
// parameters. json.Marshal sorts map keys, so equal parameter sets always
// produce equal keys.
func Key(kind string, params map[string]any) string {
	if len(params) == 0 {
		return kind
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		// Parameters are plain scalars in practice; fall back to Sprintf
		// rather than failing the lookup.
		return fmt.Sprintf("%s:%v", kind, params)
	}
	return fmt.Sprintf("%s:%s", kind, encoded)
}
