package user

import (
	"context"
	"fmt"
	"strings"

	"meetblock/models"
)

// ResolveUser returns the user for an id, or (nil, nil) when unknown.
func (s *DefaultUserService) ResolveUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, nil
	}
	return s.Repo.GetByID(ctx, userID)
}

// GetByUsername returns the user for a username, or (nil, nil) when unknown.
func (s *DefaultUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.Repo.GetByUsername(ctx, username)
}

// Create registers a minimal user record. This exists so the service can run
// standalone; real deployments provision users through the account system.
func (s *DefaultUserService) Create(ctx context.Context, username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	existing, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s is already taken", username)
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
