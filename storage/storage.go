// Package storage defines the media ingestion contract used by the content
// flow. A Backend accepts a binary payload and returns a durable reference to
// it; the caller blocks on the result before persisting anything that points
// at the object.
package storage

import (
	"context"
	"io"
)

// StoredObject is the durable reference returned by a successful Store.
// Key identifies the object inside the backend (used for Remove/Open);
// URL is the stable, client-facing address of the object.
type StoredObject struct {
	Key string
	URL string
}

// Backend defines the interface for media storage backends
type Backend interface {
	// Store uploads the payload under the given folder and returns a durable
	// reference. The original filename is only used to keep its extension.
	Store(ctx context.Context, folder, filename, contentType string, r io.Reader) (*StoredObject, error)

	// Remove deletes a previously stored object by key. Used as best-effort
	// compensation when persisting the owning record fails after upload.
	Remove(ctx context.Context, key string) error

	// Open returns the object's content for reading
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
