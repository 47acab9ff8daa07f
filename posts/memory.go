package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory implementation of PostRepository,
// used in tests and local development. The author carried on the stored post
// is returned as-is; there is no user table to join against.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*Post
	order []uuid.UUID // insertion order, the tie-break for List
}

// NewMemoryPostRepository creates a new in-memory post repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[uuid.UUID]*Post)}
}

// Create persists a new post, filling ID and timestamps when unset.
func (r *MemoryPostRepository) Create(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}

	stored := *post
	r.posts[post.ID] = &stored
	r.order = append(r.order, post.ID)
	return nil
}

// GetByID retrieves a post by id.
func (r *MemoryPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	found := *post
	return &found, nil
}

// Update rewrites the mutable fields of a post.
func (r *MemoryPostRepository) Update(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.posts[post.ID]
	if !exists {
		return ErrPostNotFound
	}

	stored.Title = post.Title
	stored.Summary = post.Summary
	stored.Content = post.Content
	stored.Cover = post.Cover
	stored.UpdatedAt = time.Now().UTC()
	post.UpdatedAt = stored.UpdatedAt
	return nil
}

// List returns at most limit posts, newest first, ties in insertion order.
func (r *MemoryPostRepository) List(ctx context.Context, limit int) ([]*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Post, 0, len(r.order))
	for _, id := range r.order {
		found := *r.posts[id]
		all = append(all, &found)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
