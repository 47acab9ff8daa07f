package auth

import (
	"context"
	"errors"
)

// Repository errors. Implementations translate their native failures to
// these so the service maps them without knowing the backing store.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the unique username constraint is violated.
	ErrUsernameTaken = errors.New("username already exists")
)

// UserRepository defines the persistence interface for users.
type UserRepository interface {
	// Create persists a new user, filling ID and CreatedAt.
	Create(ctx context.Context, user *User) error
	// GetByUsername retrieves a user by exact username.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
