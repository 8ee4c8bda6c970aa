package schedule

import "slotbook/models"

// CheckReservation validates a reservation candidate against a snapshot
// before any write is attempted. Checks run in order and the first failure
// determines the reported error: field presence, then referential existence,
// then the (slot, date, track) uniqueness conflict.
//
// The guard is pure and advisory. Two callers can both pass it before either
// write lands; the authoritative check is the unique index in the store.
func CheckReservation(candidate models.ReservationInput, snap models.Snapshot) error {
	required := []struct {
		name  string
		value string
	}{
		{"utilisateur_id", candidate.UserID},
		{"filiere_id", candidate.TrackID},
		{"creneau_id", candidate.SlotID},
		{"date", candidate.Date},
		{"titre_module", candidate.ModuleTitle},
		{"description", candidate.Description},
	}
	for _, f := range required {
		if f.value == "" {
			return NewMissingFieldError(f.name)
		}
	}

	if findUser(snap.Users, candidate.UserID) == nil {
		return NewNotFoundError("user", candidate.UserID)
	}
	if findTrack(snap.Tracks, candidate.TrackID) == nil {
		return NewNotFoundError("track", candidate.TrackID)
	}
	if findSlot(snap.Slots, candidate.SlotID) == nil {
		return NewNotFoundError("slot", candidate.SlotID)
	}

	if conflict := findReservation(snap.Reservations, candidate.SlotID, candidate.Date, candidate.TrackID); conflict != nil {
		return NewSlotTakenError(conflict)
	}
	return nil
}

func findSlot(slots []models.TimeSlot, id string) *models.TimeSlot {
	for i := range slots {
		if slots[i].ID == id {
			return &slots[i]
		}
	}
	return nil
}
