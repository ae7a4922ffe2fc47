package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunCentroidCacheContract(t, NewCache())
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewCache(WithTTL(time.Minute))
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "k", domain.Centroid{Faces: 1}))

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "k")
	require.NoError(t, err, "entry should still be alive")

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Zero(t, c.Len(), "expired entry should be evicted on read")
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = c.Put(ctx, "shared", domain.Centroid{Faces: j})
				_, _ = c.Get(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 1, c.Len())
}
