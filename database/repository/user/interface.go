// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"meetblock/database"
	"meetblock/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the resolveUser boundary: the scheduling core uses it
// only to check that owner and requester ids refer to real users. Lookup
// methods return (nil, nil) when no user matches.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database("meetblock")
	return &mongoUserRepo{
		coll: db.Collection("users"),
	}
}
