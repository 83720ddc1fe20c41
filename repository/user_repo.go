package repository

import (
	"context"

	"platerental/models"
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.AppUser) error
	GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error)
}
