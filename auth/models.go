// Package auth is responsible for authentication: user registration, login,
// session token issuance and verification, and the middleware protecting
// authenticated routes.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered identity. Users are created at registration
// and never updated or deleted by this system.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // never exposed in API responses
	CreatedAt      time.Time `json:"created_at"`
}
