package ports

import (
	"context"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// FindByUsername returns the user with the exact username, or
	// domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
