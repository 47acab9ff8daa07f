package posts

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/user/inkstream-go/apperror"
	"github.com/user/inkstream-go/auth"
	"github.com/user/inkstream-go/storage"
)

// maxListPosts caps how many posts a single list call returns.
const maxListPosts = 20

// PostService orchestrates the content flow: cover upload through the media
// backend, persistence through the repository, and the author authorization
// check on updates.
type PostService struct {
	repo   PostRepository
	media  storage.Backend
	folder string
}

// NewPostService creates a new PostService. folder is the key prefix for
// uploaded covers.
func NewPostService(repo PostRepository, media storage.Backend, folder string) *PostService {
	return &PostService{repo: repo, media: media, folder: folder}
}

// Create uploads the cover and persists a new post authored by the caller.
// The file is required. When the insert fails after a successful upload, the
// uploaded object is removed again on a best-effort basis.
func (s *PostService) Create(ctx context.Context, claims *auth.Claims, input PostInput, file *UploadedFile) (*Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NewBadRequestError("file is required", nil)
	}

	obj, err := s.media.Store(ctx, s.folder, file.Filename, file.ContentType, file.Content)
	if err != nil {
		return nil, apperror.NewExternalServiceError("failed to upload file", err)
	}

	post := &Post{
		Title:   input.Title,
		Summary: input.Summary,
		Content: input.Content,
		Cover:   obj.URL,
		Author:  Author{ID: claims.UserID, Username: claims.Username},
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.compensateUpload(ctx, obj)
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	return post, nil
}

// Update applies field updates to an existing post. Only the original author
// may update; a mismatch leaves the post untouched. A new file replaces the
// cover, otherwise the existing cover is retained. The returned post reflects
// the freshly applied changes.
func (s *PostService) Update(ctx context.Context, claims *auth.Claims, id uuid.UUID, input PostInput, file *UploadedFile) (*Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}

	if post.Author.ID != claims.UserID {
		return nil, apperror.NewUnauthorizedError("you are not the author", nil)
	}

	var uploaded *storage.StoredObject
	if file != nil {
		uploaded, err = s.media.Store(ctx, s.folder, file.Filename, file.ContentType, file.Content)
		if err != nil {
			return nil, apperror.NewExternalServiceError("failed to upload file", err)
		}
		post.Cover = uploaded.URL
	}

	post.Title = input.Title
	post.Summary = input.Summary
	post.Content = input.Content

	if err := s.repo.Update(ctx, post); err != nil {
		if uploaded != nil {
			s.compensateUpload(ctx, uploaded)
		}
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}

	return post, nil
}

// List returns the most recent posts, newest first, capped at 20, each with
// the author resolved.
func (s *PostService) List(ctx context.Context) ([]*Post, error) {
	result, err := s.repo.List(ctx, maxListPosts)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	return result, nil
}

// Get returns a post by id with the author resolved.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return post, nil
}

// compensateUpload removes an object whose owning record failed to persist.
// Failures are only logged; the request already failed for the caller.
func (s *PostService) compensateUpload(ctx context.Context, obj *storage.StoredObject) {
	if err := s.media.Remove(ctx, obj.Key); err != nil {
		log.Printf("failed to remove orphaned upload %s: %v", obj.Key, err)
	}
}

func validateInput(input PostInput) error {
	if input.Title == "" || input.Summary == "" || input.Content == "" {
		return apperror.NewValidationError("title, summary, and content are required", nil)
	}
	return nil
}
