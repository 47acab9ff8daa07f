// Package posts implements the content flow: creating, updating and reading
// blog posts, including cover image ingestion through the storage backend.
package posts

import (
	"time"

	"github.com/google/uuid"
)

// Author is the post author resolved for API responses.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Post represents a blog post. Author is recorded at creation and determines
// write authorization for all future updates; posts are never deleted by this
// system.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"` // URL of the stored cover image
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
