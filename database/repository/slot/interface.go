// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRepository exposes the standing slot catalog. Slots are administrative
// configuration: created and deleted by admins, immutable otherwise.
type SlotRepository interface {
	Create(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	List(ctx context.Context) ([]models.TimeSlot, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("creneaux"),
	}
}
