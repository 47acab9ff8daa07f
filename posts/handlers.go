package posts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/inkstream-go/apperror"
	"github.com/user/inkstream-go/auth"
)

// maxUploadSize bounds in-memory buffering of multipart bodies; larger file
// parts spill to temporary files.
const maxUploadSize = 10 << 20 // 10 MiB

// PostHandlers provides HTTP handlers for the content flow.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleCreatePost godoc
// @Summary Create a post
// @Description Creates a post with a required cover image, authored by the
// @Description authenticated user.
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Post title"
// @Param summary formData string true "Post summary"
// @Param content formData string true "Post body"
// @Param file formData file true "Cover image"
// @Success 200 {object} posts.Post "Created post"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - missing file or fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - bad or missing token"
// @Failure 502 {object} apperror.ErrorResponse "Bad Gateway - upload failed"
// @Router /post [post]
func (h *PostHandlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("missing authentication context", nil))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid multipart form", err))
			return
		}

		file, err := formFile(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if file == nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("file is required", nil))
			return
		}

		post, err := h.service.Create(r.Context(), claims, formInput(r), file)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// HandleUpdatePost godoc
// @Summary Update a post
// @Description Updates a post's fields. Only the original author may update.
// @Description A new cover file replaces the old reference; without one the
// @Description existing cover is retained.
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Param id formData string true "Post id"
// @Param title formData string true "Post title"
// @Param summary formData string true "Post summary"
// @Param content formData string true "Post body"
// @Param file formData file false "Replacement cover image"
// @Success 200 {object} posts.Post "Updated post"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - bad or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - not the author"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - unknown post id"
// @Router /post [put]
func (h *PostHandlers) HandleUpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("missing authentication context", nil))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid multipart form", err))
			return
		}

		id, err := uuid.Parse(r.FormValue("id"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid post id", err))
			return
		}

		file, err := formFile(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Update(r.Context(), claims, id, formInput(r), file)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// HandleListPosts godoc
// @Summary List posts
// @Description Returns the 20 most recent posts, newest first, with the
// @Description author's username populated.
// @Tags Posts
// @Produce json
// @Success 200 {array} posts.Post
// @Router /post [get]
func (h *PostHandlers) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if result == nil {
			result = []*Post{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// HandleGetPost godoc
// @Summary Get a post
// @Description Returns a post by id with the author's username populated.
// @Tags Posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - malformed id"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - unknown post id"
// @Router /post/{id} [get]
func (h *PostHandlers) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid post id", err))
			return
		}

		post, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// formInput collects the text fields of a multipart create/update request.
func formInput(r *http.Request) PostInput {
	return PostInput{
		Title:   r.FormValue("title"),
		Summary: r.FormValue("summary"),
		Content: r.FormValue("content"),
	}
}

// formFile extracts the optional "file" part. A missing part returns
// (nil, nil); the caller decides whether that is an error.
func formFile(r *http.Request) (*UploadedFile, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.NewBadRequestError("invalid file upload", err)
	}
	return &UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
