package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository,
// used in tests and local development.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by username
}

// NewMemoryUserRepository creates a new in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*User)}
}

// Create persists a new user, filling ID and CreatedAt.
func (r *MemoryUserRepository) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()

	stored := *user
	r.users[user.Username] = &stored
	return nil
}

// GetByUsername retrieves a user by exact username.
func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	found := *user
	return &found, nil
}
