package ports

import (
	"context"

	"github.com/aretw0/tinkit/pkg/domain"
)

// CentroidCache stores centroid results keyed by a digest of the source document.
// Implementations must be safe for concurrent use.
type CentroidCache interface {
	// Get returns the cached result for key.
	// Returns domain.ErrCacheMiss if the key is unknown or expired.
	Get(ctx context.Context, key string) (domain.Centroid, error)

	// Put stores c under key, replacing any previous entry.
	Put(ctx context.Context, key string, c domain.Centroid) error

	// Delete removes the entry for key. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error
}
