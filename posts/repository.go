package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when no post matches the lookup.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the persistence interface for posts. Reads return
// posts with the author resolved.
type PostRepository interface {
	// Create persists a new post, filling ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, post *Post) error
	// GetByID retrieves a post by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// Update rewrites the post's title, summary, content and cover.
	Update(ctx context.Context, post *Post) error
	// List returns at most limit posts, newest first.
	List(ctx context.Context, limit int) ([]*Post, error)
}
