package storage

import (
	"context"
	"io"
)

// Uploader archives finished recordings to object storage.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}
