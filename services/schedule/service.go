package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	reservationRepo "slotbook/database/repository/reservation"
	"slotbook/models"
	"slotbook/services/sync"
)

// Service exposes the weekly schedule and the reservation lifecycle.
type Service interface {
	WeekSchedule(ctx context.Context, refDate time.Time, trackID string) (models.WeekSchedule, error)
	CreateReservation(ctx context.Context, input models.ReservationInput) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id, requestingUserID string, upd models.ReservationUpdate) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id, requestingUserID string) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	UserReservations(ctx context.Context, userID string) (upcoming, past []models.Reservation, err error)
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Reservations reservationRepo.ReservationRepository
	Store        *sync.Store
	Refresher    *sync.Refresher
	Publisher    *sync.Publisher

	// Now is the clock used for status derivation; replaceable in tests.
	Now func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// WeekSchedule derives the Monday-Friday grid for the week containing
// refDate, optionally filtered to one track.
func (s *DefaultScheduleService) WeekSchedule(ctx context.Context, refDate time.Time, trackID string) (models.WeekSchedule, error) {
	snap := s.Store.Snapshot()
	views := DeriveWeek(snap, refDate, trackID, s.now())
	return GroupWeek(refDate, views), nil
}

// CreateReservation validates the candidate against the current snapshot,
// applies it optimistically, then writes it to the store. The remote unique
// index remains the authority on conflicts; losing the race surfaces the
// same slotAlreadyBooked error as the guard.
func (s *DefaultScheduleService) CreateReservation(ctx context.Context, input models.ReservationInput) (*models.Reservation, error) {
	snap := s.Store.Snapshot()
	if err := CheckReservation(input, snap); err != nil {
		return nil, err
	}

	owner := findUser(snap.Users, input.UserID)

	res := models.Reservation{
		ID:           uuid.New().String(),
		UserID:       input.UserID,
		TrackID:      input.TrackID,
		SlotID:       input.SlotID,
		Date:         input.Date,
		ModuleTitle:  input.ModuleTitle,
		Description:  ensureAttribution(input.Description, owner),
		TeachingAxis: input.TeachingAxis,
		Room:         input.Room,
	}

	s.Store.ApplyReservationCreated(res)

	created, err := s.Reservations.Create(ctx, res)
	if err != nil {
		// Roll the optimistic insert back and re-synchronize.
		s.Store.ApplyReservationDeleted(res.ID)
		s.Refresher.ScheduleRefresh(ctx)

		if errors.Is(err, reservationRepo.ErrDuplicate) {
			conflict, findErr := s.Reservations.FindBySlotDateTrack(ctx, input.SlotID, input.Date, input.TrackID)
			if findErr != nil {
				conflict = nil
			}
			return nil, NewSlotTakenError(conflict)
		}
		return nil, NewConnectionError(err)
	}

	s.Store.ConfirmReservation(*created)
	s.Publisher.Publish(ctx, sync.CollReservations)
	s.Refresher.ScheduleRefresh(ctx)
	return created, nil
}

// UpdateReservation edits the owner-mutable fields of a reservation. Only the
// owning user may update; user, track, slot and date never change.
func (s *DefaultScheduleService) UpdateReservation(ctx context.Context, id, requestingUserID string, upd models.ReservationUpdate) (*models.Reservation, error) {
	existing, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("reservation", id)
		}
		return nil, NewConnectionError(err)
	}
	if existing.UserID != requestingUserID {
		return nil, NewForbiddenError("only the reservation owner may modify it")
	}
	if upd.ModuleTitle != nil && *upd.ModuleTitle == "" {
		return nil, NewMissingFieldError("titre_module")
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			return nil, NewMissingFieldError("description")
		}
		snap := s.Store.Snapshot()
		withAttribution := ensureAttribution(*upd.Description, findUser(snap.Users, existing.UserID))
		upd.Description = &withAttribution
	}

	// Optimistic local update, restored from the store on failure.
	merged := *existing
	if upd.ModuleTitle != nil {
		merged.ModuleTitle = *upd.ModuleTitle
	}
	if upd.Description != nil {
		merged.Description = *upd.Description
	}
	if upd.TeachingAxis != nil {
		merged.TeachingAxis = *upd.TeachingAxis
	}
	if upd.Room != nil {
		merged.Room = *upd.Room
	}
	s.Store.ApplyReservationUpdated(merged)

	updated, err := s.Reservations.Update(ctx, id, upd)
	if err != nil {
		s.Store.ApplyReservationUpdated(*existing)
		s.Refresher.ScheduleRefresh(ctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("reservation", id)
		}
		return nil, NewConnectionError(err)
	}

	s.Store.ConfirmReservation(*updated)
	s.Publisher.Publish(ctx, sync.CollReservations)
	s.Refresher.ScheduleRefresh(ctx)
	return updated, nil
}

// DeleteReservation removes a reservation. Requests from anyone but the
// owner fail with forbidden and never remove the record.
func (s *DefaultScheduleService) DeleteReservation(ctx context.Context, id, requestingUserID string) error {
	existing, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("reservation", id)
		}
		return NewConnectionError(err)
	}
	if existing.UserID != requestingUserID {
		return NewForbiddenError("only the reservation owner may delete it")
	}

	if err := s.Reservations.Delete(ctx, id); err != nil {
		s.Refresher.ScheduleRefresh(ctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("reservation", id)
		}
		return NewConnectionError(err)
	}

	s.Store.ApplyReservationDeleted(id)
	s.Publisher.Publish(ctx, sync.CollReservations)
	s.Refresher.ScheduleRefresh(ctx)
	return nil
}

// ListReservations returns reservations matching the filter, for the
// supervision view.
func (s *DefaultScheduleService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	reservations, err := s.Reservations.List(ctx, filter)
	if err != nil {
		return nil, NewConnectionError(err)
	}
	return reservations, nil
}

// UserReservations splits a user's reservations into upcoming and past
// relative to today.
func (s *DefaultScheduleService) UserReservations(ctx context.Context, userID string) ([]models.Reservation, []models.Reservation, error) {
	all, err := s.Reservations.List(ctx, models.ReservationFilter{})
	if err != nil {
		return nil, nil, NewConnectionError(err)
	}

	today := s.now().Format(DateLayout)
	upcoming := []models.Reservation{}
	past := []models.Reservation{}
	for _, r := range all {
		if r.UserID != userID {
			continue
		}
		if r.Date < today {
			past = append(past, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, past, nil
}

// ensureAttribution prefixes the teacher attribution line to a description
// when it is not already present.
func ensureAttribution(description string, owner *models.User) string {
	if owner == nil {
		return description
	}
	line := "Module présenté par " + owner.FullName() + "\n\n"
	if strings.Contains(description, strings.TrimSpace(line)) {
		return description
	}
	return line + description
}
