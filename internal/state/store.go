// Package state holds the shared health snapshot the background poller
// feeds and the UI header reads. Listing data never lives here; it flows
// through the session cache instead.
package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest known API health.
type Snapshot struct {
	Healthy             bool
	HasHealth           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// probes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. The poller writes,
// the UI reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a probe result. On error the previous health reading is
// kept but the error and failure streak are recorded for visibility.
func (s *Store) Update(healthy bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Healthy = healthy
	s.snapshot.HasHealth = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
