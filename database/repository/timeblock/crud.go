// File: database/repository/timeblock/crud.go
package timeblockRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"meetblock/models"
)

func (r *mongoTimeBlockRepo) Insert(ctx context.Context, block *models.TimeBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	if block.Status == "" {
		block.Status = models.StatusNoResponse
	}

	if _, err := r.coll.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("failed to insert time block: %w", err)
	}
	return nil
}

func (r *mongoTimeBlockRepo) GetByID(ctx context.Context, id string) (*models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var block models.TimeBlock
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&block)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time block %s: %w", id, err)
	}
	return &block, nil
}

func (r *mongoTimeBlockRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete time block %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteUnclaimedByOwnerAndStart backs the cascade cleanup that runs after a
// claim is accepted: the requester's own open availabilities at the same
// start are now stale duplicate holds.
func (r *mongoTimeBlockRepo) DeleteUnclaimedByOwnerAndStart(ctx context.Context, ownerID string, start time.Time, keepID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"owner":     ownerID,
		"start":     start,
		"requester": bson.M{"$in": bson.A{nil, ""}},
		"id":        bson.M{"$ne": keepID},
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate holds for owner %s: %w", ownerID, err)
	}
	return res.DeletedCount, nil
}
