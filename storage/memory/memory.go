// Package memory provides an in-memory implementation of the storage.Backend
// interface, used in tests and local development.
package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/user/inkstream-go/storage"
)

// Backend is an in-memory implementation of the storage.Backend interface
type Backend struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string][]byte),
	}
}

// Store reads the payload into memory and returns a memory:// reference.
func (b *Backend) Store(ctx context.Context, folder, filename, contentType string, r io.Reader) (*storage.StoredObject, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	key := uuid.New().String() + strings.ToLower(path.Ext(filename))
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data

	return &storage.StoredObject{Key: key, URL: "memory://" + key}, nil
}

// Remove deletes an object by key
func (b *Backend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return errors.New("object not found")
	}
	delete(b.objects, key)
	return nil
}

// Open returns the object's content for reading
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Len reports the number of stored objects. Exposed for tests asserting
// compensation behavior.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
