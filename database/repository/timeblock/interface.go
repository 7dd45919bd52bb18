// File: database/repository/timeblock/interface.go
package timeblockRepo

import (
	"context"
	"errors"
	"time"

	"meetblock/database"
	"meetblock/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrVersionMismatch is returned by lifecycle updates when the compare-and-swap
// filter matched nothing: the block is gone or another writer advanced its
// version first.
var ErrVersionMismatch = errors.New("time block version mismatch")

// TimeBlockRepository defines data access for time blocks. Lookup methods
// return (nil, nil) when no document matches.
type TimeBlockRepository interface {
	Insert(ctx context.Context, block *models.TimeBlock) error
	GetByID(ctx context.Context, id string) (*models.TimeBlock, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteUnclaimedByOwnerAndStart removes every unclaimed block the owner
	// holds at the given start, except the one identified by keepID.
	DeleteUnclaimedByOwnerAndStart(ctx context.Context, ownerID string, start time.Time, keepID string) (int64, error)

	// Lifecycle updates. Each applies only when the stored version matches
	// and increments it, returning the updated document.
	SetClaim(ctx context.Context, id, requesterID, message string, version int) (*models.TimeBlock, error)
	SetAccepted(ctx context.Context, id string, version int) (*models.TimeBlock, error)
	SetStatus(ctx context.Context, id string, status models.TimeBlockStatus, version int) (*models.TimeBlock, error)

	// Calendar queries.
	FindByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error)
	FindByUser(ctx context.Context, userID string) ([]models.TimeBlock, error)
	FindUnclaimedByOwner(ctx context.Context, ownerID string, from time.Time) ([]models.TimeBlock, error)
	FindRequests(ctx context.Context, userID string, sent bool, now time.Time) ([]models.TimeBlock, error)
	FindUpcoming(ctx context.Context, userID string, now time.Time) ([]models.TimeBlock, error)
	FindOccurred(ctx context.Context, userID string, now time.Time, unmarkedOnly bool) ([]models.TimeBlock, error)

	EnsureIndexes() error
}

type mongoTimeBlockRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeBlockRepo constructs a new MongoDB TimeBlockRepository.
func NewMongoTimeBlockRepo() TimeBlockRepository {
	db := database.MongoClient.Database("meetblock")
	return &mongoTimeBlockRepo{
		coll: db.Collection("timeblocks"),
	}
}
