// File: services/sync/store.go
package sync

import (
	"sync"

	"slotbook/models"
)

// Event is a coarse change notification: something in the named collection
// changed, with no per-row detail.
type Event struct {
	Collection string
}

// Store owns the process-wide in-memory copy of the four source collections.
// Readers take snapshots; only the mutation entry points below write.
// Optimistic writes are tagged pending until an authoritative refresh or a
// write confirmation replaces them.
type Store struct {
	mu      sync.RWMutex
	snap    models.Snapshot
	pending map[string]bool // reservation IDs applied locally, not yet confirmed

	seq         uint64 // last sequence applied by ReplaceAll
	nextSeq     uint64 // last sequence issued
	subscribers []chan Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pending: make(map[string]bool)}
}

// Snapshot returns a copy of the current collections.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Slots:        append([]models.TimeSlot(nil), s.snap.Slots...),
		Reservations: append([]models.Reservation(nil), s.snap.Reservations...),
		Users:        append([]models.User(nil), s.snap.Users...),
		Tracks:       append([]models.Track(nil), s.snap.Tracks...),
	}
}

// NextSeq issues a sequence number for a refresh about to start. Results of
// superseded refreshes are discarded by ReplaceAll.
func (s *Store) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// ReplaceAll installs an authoritative snapshot fetched under seq. It reports
// whether the snapshot was applied; a refresh that finished after a newer one
// is stale and dropped.
func (s *Store) ReplaceAll(seq uint64, snap models.Snapshot) bool {
	s.mu.Lock()
	if seq <= s.seq {
		s.mu.Unlock()
		return false
	}
	s.seq = seq
	s.snap = snap
	s.pending = make(map[string]bool)
	s.mu.Unlock()

	s.notify(Event{Collection: "all"})
	return true
}

// ApplyReservationCreated inserts a reservation optimistically.
func (s *Store) ApplyReservationCreated(res models.Reservation) {
	s.mu.Lock()
	s.snap.Reservations = append(s.snap.Reservations, res)
	s.pending[res.ID] = true
	s.mu.Unlock()

	s.notify(Event{Collection: "reservations"})
}

// ApplyReservationUpdated replaces a reservation optimistically.
func (s *Store) ApplyReservationUpdated(res models.Reservation) {
	s.mu.Lock()
	for i := range s.snap.Reservations {
		if s.snap.Reservations[i].ID == res.ID {
			s.snap.Reservations[i] = res
			break
		}
	}
	s.pending[res.ID] = true
	s.mu.Unlock()

	s.notify(Event{Collection: "reservations"})
}

// ApplyReservationDeleted removes a reservation optimistically.
func (s *Store) ApplyReservationDeleted(id string) {
	s.mu.Lock()
	kept := s.snap.Reservations[:0]
	for _, r := range s.snap.Reservations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.snap.Reservations = kept
	delete(s.pending, id)
	s.mu.Unlock()

	s.notify(Event{Collection: "reservations"})
}

// ConfirmReservation swaps an optimistic record for the authoritative one
// returned by the write.
func (s *Store) ConfirmReservation(res models.Reservation) {
	s.mu.Lock()
	for i := range s.snap.Reservations {
		if s.snap.Reservations[i].ID == res.ID {
			s.snap.Reservations[i] = res
			break
		}
	}
	delete(s.pending, res.ID)
	s.mu.Unlock()
}

// IsPending reports whether a reservation is still an unconfirmed local write.
func (s *Store) IsPending(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[id]
}

// Subscribe returns a channel receiving change events. Slow consumers drop
// events rather than block mutations.
func (s *Store) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
