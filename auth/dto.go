package auth

import "github.com/google/uuid"

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"strongpassword123"`
}

// AuthResponse is returned on successful registration or login, alongside the
// token cookie.
type AuthResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
