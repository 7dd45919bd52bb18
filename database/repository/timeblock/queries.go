// File: database/repository/timeblock/queries.go
package timeblockRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meetblock/models"
)

// An unclaimed block may store its requester as a missing field or as an
// empty string, depending on whether it was ever claimed.
var unclaimedFilter = bson.M{"$in": bson.A{nil, ""}}
var claimedFilter = bson.M{"$nin": bson.A{nil, ""}}

func (r *mongoTimeBlockRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query time blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.TimeBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode time blocks: %w", err)
	}
	return blocks, nil
}

// FindByOwner returns the owner's uncanceled blocks, latest start first.
func (r *mongoTimeBlockRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error) {
	filter := bson.M{
		"owner":  ownerID,
		"status": bson.M{"$ne": models.StatusCanceled},
	}
	return r.find(ctx, filter, bson.D{{Key: "start", Value: -1}})
}

// FindByUser returns every block the user appears in, as owner or requester,
// latest start first. This is the snapshot the statistics derivation runs on.
func (r *mongoTimeBlockRepo) FindByUser(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"owner": userID},
			bson.M{"requester": userID},
		},
	}
	return r.find(ctx, filter, bson.D{{Key: "start", Value: -1}})
}

// FindUnclaimedByOwner returns the owner's open availabilities starting at or
// after from, earliest first.
func (r *mongoTimeBlockRepo) FindUnclaimedByOwner(ctx context.Context, ownerID string, from time.Time) ([]models.TimeBlock, error) {
	filter := bson.M{
		"owner":     ownerID,
		"requester": unclaimedFilter,
		"start":     bson.M{"$gte": from},
	}
	return r.find(ctx, filter, bson.D{{Key: "start", Value: 1}})
}

// FindRequests returns unanswered future claim requests the user has sent
// (sent=true) or received on their own blocks (sent=false), soonest first.
func (r *mongoTimeBlockRepo) FindRequests(ctx context.Context, userID string, sent bool, now time.Time) ([]models.TimeBlock, error) {
	var filter bson.M
	if sent {
		filter = bson.M{
			"requester": userID,
			"accepted":  false,
			"start":     bson.M{"$gte": now},
		}
	} else {
		filter = bson.M{
			"owner":     userID,
			"accepted":  false,
			"requester": claimedFilter,
			"start":     bson.M{"$gte": now},
		}
	}
	return r.find(ctx, filter, bson.D{{Key: "start", Value: 1}})
}

// FindUpcoming returns the user's future accepted meetings soonest first,
// with canceled ones appended at the bottom.
func (r *mongoTimeBlockRepo) FindUpcoming(ctx context.Context, userID string, now time.Time) ([]models.TimeBlock, error) {
	roles := bson.A{
		bson.M{"owner": userID},
		bson.M{"requester": userID},
	}
	active, err := r.find(ctx, bson.M{
		"$or":      roles,
		"accepted": true,
		"start":    bson.M{"$gte": now},
		"status":   models.StatusNoResponse,
	}, bson.D{{Key: "start", Value: 1}})
	if err != nil {
		return nil, err
	}
	canceled, err := r.find(ctx, bson.M{
		"$or":      roles,
		"accepted": true,
		"start":    bson.M{"$gte": now},
		"status":   models.StatusCanceled,
	}, bson.D{{Key: "start", Value: 1}})
	if err != nil {
		return nil, err
	}
	return append(active, canceled...), nil
}

// FindOccurred returns the user's past accepted meetings, latest first.
// With unmarkedOnly it returns only those still awaiting a met response.
func (r *mongoTimeBlockRepo) FindOccurred(ctx context.Context, userID string, now time.Time, unmarkedOnly bool) ([]models.TimeBlock, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"owner": userID},
			bson.M{"requester": userID},
		},
		"accepted": true,
		"start":    bson.M{"$lte": now},
	}
	if unmarkedOnly {
		filter["status"] = models.StatusNoResponse
	} else {
		filter["status"] = bson.M{"$ne": models.StatusCanceled}
	}
	return r.find(ctx, filter, bson.D{{Key: "start", Value: -1}})
}
