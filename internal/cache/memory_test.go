package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "sizes", []byte(`[1]`), time.Minute))

	v, ok, err := c.Get(ctx, "sizes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, string(v))

	require.NoError(t, c.Delete(ctx, "sizes", "unknown"))
	_, ok, err = c.Get(ctx, "sizes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "orders", []byte(`[]`), 5*time.Minute))

	now = now.Add(4 * time.Minute)
	_, ok, _ := c.Get(ctx, "orders")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "orders")
	assert.False(t, ok)
}

func TestMemoryCacheCopiesValue(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'z'

	v, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(v))
}
