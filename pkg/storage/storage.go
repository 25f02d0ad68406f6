package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

type Object struct {
	Path        string
	URL         string
	Size        int64
	ContentType string
	Updated     time.Time
}

// Gateway is the blob store used for images.
type Gateway interface {
	Put(ctx context.Context, r io.Reader, size int64, contentType, path string) (*Object, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Stat(ctx context.Context, path string) (*Object, error)
	// DownloadURL resolves a URL for a stored object, retrying while the
	// object is not yet visible.
	DownloadURL(ctx context.Context, path string) (string, error)
}
