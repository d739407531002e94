package geo

import (
	"context"

	"github.com/i474232898/geo-window-export/internal/window"
)

// RecordStore is the record-store collaborator: a filtered scan projecting
// the two coordinate fields.
type RecordStore interface {
	Scan(ctx context.Context, filter window.Filter) ([]Record, error)
}

// BlobStore is the blob-store collaborator. Exists reports absence as false,
// not as an error; Publish writes the object and makes it publicly readable.
type BlobStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Publish(ctx context.Context, key string, body []byte) error
	URL(key string) string
}
