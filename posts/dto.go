package posts

import "io"

// PostInput carries the text fields of a create or update request. All three
// are required at the flow boundary.
type PostInput struct {
	Title   string `json:"title" example:"A day in the life"`
	Summary string `json:"summary" example:"Short teaser shown in the list view"`
	Content string `json:"content" example:"Full post body"`
}

// UploadedFile is a cover image received as a multipart upload. Content is
// streamed to the storage backend; it is not buffered here.
type UploadedFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}
