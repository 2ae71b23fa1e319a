// Package cache memoizes API responses for one dashboard session. Entries
// are keyed by the canonical request (endpoint plus encoded parameters) and
// expire after a per-entry TTL. A successful mutation invalidates every
// cached variant of the affected listing so the next read reflects the
// change; failed mutations leave the cache untouched.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// Store is a session-scoped TTL cache.
type Store struct {
	entries *gocache.Cache
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		entries: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// GetOrFetch returns the cached value for key when present and unexpired.
// Otherwise it calls fetch, stores the result with the given TTL, and
// returns it. Fetch errors are returned as-is and never cached.
func (s *Store) GetOrFetch(key string, ttl time.Duration, fetch func() (any, error)) (any, error) {
	if value, ok := s.entries.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return nil, err
	}
	s.entries.Set(key, value, ttl)
	return value, nil
}

// InvalidatePrefix removes every entry whose key begins with prefix.
// Passing the bare endpoint drops all parameter variants of that listing.
func (s *Store) InvalidatePrefix(prefix string) {
	for key := range s.entries.Items() {
		if strings.HasPrefix(key, prefix) {
			s.entries.Delete(key)
		}
	}
}

// Len reports the number of live entries, counting expired ones that have
// not been swept yet as gone.
func (s *Store) Len() int {
	count := 0
	for key := range s.entries.Items() {
		if _, ok := s.entries.Get(key); ok {
			count++
		}
	}
	return count
}
