// File: database/repository/timeblock/updates.go
package timeblockRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meetblock/models"
)

// casUpdate applies a $set to the block identified by (id, version) and bumps
// the version. The version filter is what makes every lifecycle transition an
// atomic check-then-write: a concurrent writer that got there first leaves
// nothing for this filter to match.
func (r *mongoTimeBlockRepo) casUpdate(ctx context.Context, id string, version int, set bson.M) (*models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "version": version}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.TimeBlock
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrVersionMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update time block %s: %w", id, err)
	}
	return &updated, nil
}

// SetClaim sets or clears the current requester and message. An empty
// requesterID returns the block to the unclaimed state.
func (r *mongoTimeBlockRepo) SetClaim(ctx context.Context, id, requesterID, message string, version int) (*models.TimeBlock, error) {
	set := bson.M{
		"requester": requesterID,
		"message":   message,
		"accepted":  false,
	}
	return r.casUpdate(ctx, id, version, set)
}

// SetAccepted marks the current claim as accepted by the owner.
func (r *mongoTimeBlockRepo) SetAccepted(ctx context.Context, id string, version int) (*models.TimeBlock, error) {
	return r.casUpdate(ctx, id, version, bson.M{"accepted": true})
}

// SetStatus records an outcome tag (met variants, canceled).
func (r *mongoTimeBlockRepo) SetStatus(ctx context.Context, id string, status models.TimeBlockStatus, version int) (*models.TimeBlock, error) {
	return r.casUpdate(ctx, id, version, bson.M{"status": status})
}
