package sync

import (
	"testing"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceAllDiscardsStaleRefresh(t *testing.T) {
	s := NewStore()

	older := s.NextSeq()
	newer := s.NextSeq()

	applied := s.ReplaceAll(newer, models.Snapshot{
		Reservations: []models.Reservation{{ID: "fresh"}},
	})
	assert.True(t, applied)

	// The older refresh finished late; its result must not clobber the
	// newer snapshot.
	applied = s.ReplaceAll(older, models.Snapshot{
		Reservations: []models.Reservation{{ID: "stale"}},
	})
	assert.False(t, applied)

	snap := s.Snapshot()
	require.Len(t, snap.Reservations, 1)
	assert.Equal(t, "fresh", snap.Reservations[0].ID)
}

func TestPendingLifecycle(t *testing.T) {
	s := NewStore()

	res := models.Reservation{ID: "r1", SlotID: "s1", Date: "2025-03-03", TrackID: "t1"}
	s.ApplyReservationCreated(res)
	assert.True(t, s.IsPending("r1"))

	snap := s.Snapshot()
	require.Len(t, snap.Reservations, 1)

	s.ConfirmReservation(res)
	assert.False(t, s.IsPending("r1"))

	snap = s.Snapshot()
	require.Len(t, snap.Reservations, 1, "confirmation keeps the record")
}

func TestReplaceAllClearsPending(t *testing.T) {
	s := NewStore()
	s.ApplyReservationCreated(models.Reservation{ID: "r1"})
	require.True(t, s.IsPending("r1"))

	s.ReplaceAll(s.NextSeq(), models.Snapshot{})
	assert.False(t, s.IsPending("r1"), "an authoritative snapshot supersedes local writes")
	assert.Empty(t, s.Snapshot().Reservations)
}

func TestApplyReservationUpdatedAndDeleted(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(s.NextSeq(), models.Snapshot{
		Reservations: []models.Reservation{
			{ID: "r1", ModuleTitle: "avant"},
			{ID: "r2"},
		},
	})

	s.ApplyReservationUpdated(models.Reservation{ID: "r1", ModuleTitle: "après"})
	assert.True(t, s.IsPending("r1"))

	snap := s.Snapshot()
	require.Len(t, snap.Reservations, 2)
	assert.Equal(t, "après", snap.Reservations[0].ModuleTitle)

	s.ApplyReservationDeleted("r1")
	assert.False(t, s.IsPending("r1"))

	snap = s.Snapshot()
	require.Len(t, snap.Reservations, 1)
	assert.Equal(t, "r2", snap.Reservations[0].ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(s.NextSeq(), models.Snapshot{
		Reservations: []models.Reservation{{ID: "r1", ModuleTitle: "original"}},
	})

	snap := s.Snapshot()
	snap.Reservations[0].ModuleTitle = "mutated"

	assert.Equal(t, "original", s.Snapshot().Reservations[0].ModuleTitle)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	s.ApplyReservationCreated(models.Reservation{ID: "r1"})
	ev := <-ch
	assert.Equal(t, "reservations", ev.Collection)

	s.ReplaceAll(s.NextSeq(), models.Snapshot{})
	ev = <-ch
	assert.Equal(t, "all", ev.Collection)
}
