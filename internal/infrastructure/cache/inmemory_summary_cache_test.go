package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemorySummaryCache(time.Minute)

		require.NoError(t, c.Set(ctx, "compliance:summary:k", []byte("payload")))

		raw, ok, err := c.Get(ctx, "compliance:summary:k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("payload"), raw)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		c := NewInMemorySummaryCache(time.Minute)

		_, ok, err := c.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		c := NewInMemorySummaryCache(-time.Second)

		require.NoError(t, c.Set(ctx, "k", []byte("payload")))

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tenant invalidation only clears that tenant", func(t *testing.T) {
		c := NewInMemorySummaryCache(time.Minute)
		tenantA := uuid.New()
		tenantB := uuid.New()

		keyA := "compliance:summary:" + tenantA.String() + ":2026-04-01:2026-04-30"
		keyB := "compliance:summary:" + tenantB.String() + ":2026-04-01:2026-04-30"
		require.NoError(t, c.Set(ctx, keyA, []byte("a")))
		require.NoError(t, c.Set(ctx, keyB, []byte("b")))

		require.NoError(t, c.InvalidateTenant(ctx, tenantA))

		_, okA, _ := c.Get(ctx, keyA)
		_, okB, _ := c.Get(ctx, keyB)
		assert.False(t, okA)
		assert.True(t, okB)
	})
}
