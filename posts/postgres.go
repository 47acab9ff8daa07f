package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPostRepository implements PostRepository on top of pgx.
type PostgresPostRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPostRepository creates a PostgreSQL-backed post repository.
func NewPostgresPostRepository(db *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create inserts a new post.
func (r *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	query := `INSERT INTO posts (title, summary, content, cover, author)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		post.Title, post.Summary, post.Content, post.Cover, post.Author.ID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// GetByID retrieves a post with its author resolved.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var post Post
	query := `SELECT p.id, p.title, p.summary, p.content, p.cover,
	                 p.author, u.username, p.created_at, p.updated_at
	          FROM posts p
	          JOIN users u ON u.id = p.author
	          WHERE p.id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Summary, &post.Content, &post.Cover,
		&post.Author.ID, &post.Author.Username, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update rewrites the mutable fields of a post. The author column is never
// touched; it is fixed at creation.
func (r *PostgresPostRepository) Update(ctx context.Context, post *Post) error {
	query := `UPDATE posts
	          SET title = $1, summary = $2, content = $3, cover = $4, updated_at = now()
	          WHERE id = $5
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		post.Title, post.Summary, post.Content, post.Cover, post.ID,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// List returns at most limit posts ordered by creation time descending, ties
// broken by id for a stable order.
func (r *PostgresPostRepository) List(ctx context.Context, limit int) ([]*Post, error) {
	query := `SELECT p.id, p.title, p.summary, p.content, p.cover,
	                 p.author, u.username, p.created_at, p.updated_at
	          FROM posts p
	          JOIN users u ON u.id = p.author
	          ORDER BY p.created_at DESC, p.id
	          LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*Post, 0, limit)
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Summary, &post.Content, &post.Cover,
			&post.Author.ID, &post.Author.Username, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &post)
	}
	return result, rows.Err()
}
