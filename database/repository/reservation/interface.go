// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"

	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned when an insert violates the (creneau_id, date,
// filiere_id) unique index. This is the authoritative double-booking check;
// the in-process conflict guard only gives earlier, friendlier feedback.
var ErrDuplicate = errors.New("reservation already exists for slot, date and track")

type ReservationRepository interface {
	Create(ctx context.Context, res models.Reservation) (*models.Reservation, error)
	Update(ctx context.Context, id string, upd models.ReservationUpdate) (*models.Reservation, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	FindBySlotDateTrack(ctx context.Context, slotID, date, trackID string) (*models.Reservation, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository and
// ensures its indexes.
func NewMongoReservationRepo() ReservationRepository {
	repo := &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
	repo.ensureIndexes()
	return repo
}
