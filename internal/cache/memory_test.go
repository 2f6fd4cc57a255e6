package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", []entry{{Name: "Open Desk", Price: 10}}, time.Minute))

		var got []entry
		found, err := c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []entry{{Name: "Open Desk", Price: 10}}, got)
	})

	t.Run("Missing", func(t *testing.T) {
		var got []entry
		found, err := c.Get(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "d", entry{Name: "x"}, 0))
		require.NoError(t, c.Delete(ctx, "d", "unknown"))
		var got entry
		found, _ := c.Get(ctx, "d", &got)
		assert.False(t, found)
	})

	t.Run("Expiry", func(t *testing.T) {
		now := time.Now()
		c.now = func() time.Time { return now }
		require.NoError(t, c.Set(ctx, "e", entry{Name: "y"}, time.Second))

		c.now = func() time.Time { return now.Add(2 * time.Second) }
		var got entry
		found, err := c.Get(ctx, "e", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
