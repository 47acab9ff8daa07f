package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresUserRepository implements UserRepository on top of pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a PostgreSQL-backed user repository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user, translating a username unique violation to
// ErrUsernameTaken.
func (r *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, password)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, user.Username, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername retrieves a user by exact username.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password, created_at FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
