// Package blobstore stores uploaded source documents.
package blobstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks salescoach-ai/internal/blobstore Store

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("invalid object key")
)

// Object describes a stored blob.
type Object struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimetype"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is an object store keyed by slash-separated paths.
type Store interface {
	// Upload writes data under key, replacing any existing object, and
	// returns the stored path.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Download returns the object's bytes or ErrNotFound.
	Download(ctx context.Context, key string) ([]byte, error)

	// List returns the objects whose key starts with prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Remove deletes the given keys. Missing keys are ignored.
	Remove(ctx context.Context, keys []string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// ValidateKey checks that key is a clean relative slash path.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if path.Clean(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// DocumentKey builds the object key of a document: <topicID>/<documentID>-<filename>.
func DocumentKey(topicID, documentID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "document"
	}
	return topicID + "/" + documentID + "-" + name
}

func mimeTypeOf(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
