package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var got item
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", item{Name: "voice", Count: 2}, time.Minute))

	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{Name: "voice", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", item{Name: "a"}, time.Second))

	var got item
	found, _ := c.Get(ctx, "k", &got)
	assert.True(t, found)

	now = now.Add(2 * time.Second)
	found, _ = c.Get(ctx, "k", &got)
	assert.False(t, found)
}

func TestMemoryCacheStoresCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	v := item{Name: "before"}
	require.NoError(t, c.Set(ctx, "k", v, 0))
	v.Name = "after"

	var got item
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Name)
}
