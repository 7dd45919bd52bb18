// FILE: database/repository/timeblock/indexes.go
package timeblockRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeblocks collection.
func (r *mongoTimeBlockRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on TimeBlock ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for owner and start (collision checks, calendar listing)
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("owner_start_idx"),
		},
		// Compound index for requester and start (claim-side listings)
		{
			Keys:    bson.D{{Key: "requester", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("requester_start_idx"),
		},
		// Index for status-filtered scans (upcoming, occurred)
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("status_start_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeblock indexes: %w", err)
	}
	return nil
}
