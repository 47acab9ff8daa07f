package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/inkstream-go/apperror"
)

// AuthService provides authentication-related services.
type AuthService struct {
	repo   UserRepository
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Tokens exposes the token service for middleware wiring.
func (s *AuthService) Tokens() *TokenService {
	return s.tokens
}

// Register creates a new user and issues a session token for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", apperror.NewValidationError("username and password are required", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username:       req.Username,
		HashedPassword: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, "", apperror.NewConflictError("username already exists", nil)
		}
		return nil, "", apperror.NewDatabaseError("failed to create user", err)
	}

	token, _, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{ID: user.ID, Username: user.Username}, token, nil
}

// Login authenticates a user and issues a session token. Unknown usernames
// and wrong passwords produce the same error so the response does not reveal
// which part was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", apperror.NewValidationError("username and password are required", nil)
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, "", apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, "", apperror.NewAuthError("invalid credentials", nil)
	}

	token, _, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{ID: user.ID, Username: user.Username}, token, nil
}
