// Package store holds the single current job-application snapshot together
// with the stream connection state. One writer (the stream client) replaces
// the snapshot wholesale; any number of readers observe changes through Watch.
package store

import (
	"sync"

	"jobtailor/internal/model"
)

type SnapshotStore struct {
	mu        sync.RWMutex
	snapshot  *model.JobApplicationSnapshot
	connected bool
	err       error

	watchers map[int]chan struct{}
	nextID   int
}

func New() *SnapshotStore {
	return &SnapshotStore{
		watchers: make(map[int]chan struct{}),
	}
}

// UpdateSnapshot replaces the stored snapshot wholesale. There are no
// merge or patch semantics: the backend always delivers complete state.
func (s *SnapshotStore) UpdateSnapshot(snap *model.JobApplicationSnapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	s.notify()
}

func (s *SnapshotStore) SetConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
	s.notify()
}

// SetError records the last stream-level error. It does not clear the
// snapshot: a stale snapshot is still better than none.
func (s *SnapshotStore) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()
}

func (s *SnapshotStore) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

func (s *SnapshotStore) Snapshot() *model.JobApplicationSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *SnapshotStore) Events() []model.ApplicationEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.Events
}

func (s *SnapshotStore) CompanyProfile() *model.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.CompanyProfile
}

func (s *SnapshotStore) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *SnapshotStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Watch returns a channel that receives a tick after every state change,
// plus a cancel func that must be called when the observer goes away.
// Notifications coalesce: a slow observer sees at least one tick for any
// burst of changes and reads the current state fresh.
func (s *SnapshotStore) Watch() (<-chan struct{}, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan struct{}, 1)
	s.watchers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *SnapshotStore) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
