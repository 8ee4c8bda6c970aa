package schedule

import (
	"sort"
	"time"

	"slotbook/models"
)

// DeriveWeek computes the full set of slot views for the Monday-Friday week
// containing refDate. When trackID is non-empty, a slot only counts as
// reserved for a reservation of that track; with no filter, a reservation of
// any track marks the slot reserved.
//
// The function is pure: identical inputs and an identical now yield identical
// output, and a later now can only move a slot's status toward elapsed.
func DeriveWeek(snap models.Snapshot, refDate time.Time, trackID string, now time.Time) []models.SlotView {
	monday := MondayOf(refDate)

	views := make([]models.SlotView, 0, len(snap.Slots))
	for _, slot := range snap.Slots {
		date, ok := ResolveDate(monday, slot.Weekday)
		if !ok {
			continue
		}

		reservation := findReservation(snap.Reservations, slot.ID, date, trackID)

		// Status precedence: elapsed wins over reserved, reserved over
		// available. A reservation on an elapsed slot stays attached for
		// display but does not change the status.
		status := models.StatusAvailable
		if IsElapsed(date, slot.StartTime, now) {
			status = models.StatusElapsed
		} else if reservation != nil {
			status = models.StatusReserved
		}

		view := models.SlotView{
			TimeSlot:    slot,
			Date:        date,
			Status:      status,
			Reservation: reservation,
		}
		if reservation != nil {
			view.User = findUser(snap.Users, reservation.UserID)
			view.Track = findTrack(snap.Tracks, reservation.TrackID)
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		return views[i].StartTime < views[j].StartTime
	})
	return views
}

// GroupWeek arranges derived slot views into the weekday-keyed structure the
// calendar grid consumes.
func GroupWeek(refDate time.Time, views []models.SlotView) models.WeekSchedule {
	days := make(map[string][]models.SlotView, len(models.Weekdays))
	for _, d := range models.Weekdays {
		days[d] = []models.SlotView{}
	}
	for _, v := range views {
		days[v.Weekday] = append(days[v.Weekday], v)
	}
	return models.WeekSchedule{
		WeekStart: MondayOf(refDate).Format(DateLayout),
		Days:      days,
	}
}

func findReservation(reservations []models.Reservation, slotID, date, trackID string) *models.Reservation {
	for i := range reservations {
		r := &reservations[i]
		if r.SlotID != slotID || r.Date != date {
			continue
		}
		if trackID != "" && r.TrackID != trackID {
			continue
		}
		return r
	}
	return nil
}

func findUser(users []models.User, id string) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func findTrack(tracks []models.Track, id string) *models.Track {
	for i := range tracks {
		if tracks[i].ID == id {
			return &tracks[i]
		}
	}
	return nil
}
