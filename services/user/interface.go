package user

import (
	"context"

	userRepo "meetblock/database/repository/user"
	"meetblock/models"
)

// UserService is the thin account boundary the scheduling core consumes:
// identifier resolution and nothing else. Registration, authentication, and
// profile management belong to the external account system.
type UserService interface {
	ResolveUser(ctx context.Context, userID string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, email string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
