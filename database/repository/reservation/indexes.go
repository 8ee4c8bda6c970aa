// File: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"time"

	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ensureIndexes creates the id index and the unique compound index that
// enforces at most one reservation per (slot, date, track).
func (r *mongoReservationRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "creneau_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "filiere_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "utilisateur_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		utils.GetLogger().Warn("failed to ensure reservation indexes", zap.Error(err))
	}
}
