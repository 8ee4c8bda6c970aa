// File: database/repository/track/crud.go
package trackRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/models"
)

func (r *mongoTrackRepo) Create(ctx context.Context, track models.Track) (*models.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if track.ID == "" {
		track.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, track); err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *mongoTrackRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoTrackRepo) GetByID(ctx context.Context, id string) (*models.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var track models.Track
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&track); err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *mongoTrackRepo) List(ctx context.Context) ([]models.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tracks []models.Track
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}
