package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// RunCentroidCacheContract runs a suite of tests to verify that a CentroidCache
// implementation adheres to the defined interface contract.
func RunCentroidCacheContract(t *testing.T, cache CentroidCache) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Put and Get", func(t *testing.T) {
		want := domain.Centroid{
			Point:     r3.Vec{X: 0.5, Y: 0.25, Z: -12.125},
			Defined:   true,
			TotalArea: 1.5,
			Faces:     3,
		}
		require.NoError(t, cache.Put(ctx, key, want))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Undefined centroid round-trips", func(t *testing.T) {
		undefinedKey := key + "-undefined"
		want := domain.Centroid{Faces: 2, DegenerateFaces: 2}
		require.NoError(t, cache.Put(ctx, undefinedKey, want))

		got, err := cache.Get(ctx, undefinedKey)
		require.NoError(t, err)
		assert.False(t, got.Defined)
		assert.Equal(t, 2, got.DegenerateFaces)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put overwrites", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, domain.Centroid{Faces: 1}))
		require.NoError(t, cache.Put(ctx, key, domain.Centroid{Faces: 7}))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Faces)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, domain.Centroid{Faces: 1}))
		require.NoError(t, cache.Delete(ctx, key))

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is not an error")
	})
}
