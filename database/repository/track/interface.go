// File: database/repository/track/interface.go
package trackRepo

import (
	"context"

	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TrackRepository interface {
	Create(ctx context.Context, track models.Track) (*models.Track, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Track, error)
	List(ctx context.Context) ([]models.Track, error)
}

type mongoTrackRepo struct {
	coll *mongo.Collection
}

// NewMongoTrackRepo constructs a new MongoDB TrackRepository.
func NewMongoTrackRepo() TrackRepository {
	return &mongoTrackRepo{
		coll: database.DB().Collection("filieres"),
	}
}
