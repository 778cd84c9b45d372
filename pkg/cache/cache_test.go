package cache_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/cache"
)

type payload struct {
	Title string `json:"title"`
	Price float64 `json:"price"`
}

func withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.RDB = nil })
	return mr
}

func TestSetGetRoundTrip(t *testing.T) {
	withRedis(t)

	require.NoError(t, cache.Set("catalog:product:abc", payload{Title: "Saree", Price: 1499}, time.Minute))

	var got payload
	require.True(t, cache.Get("catalog:product:abc", &got))
	assert.Equal(t, "Saree", got.Title)
	assert.Equal(t, 1499.0, got.Price)
}

func TestGet_MissReturnsFalse(t *testing.T) {
	withRedis(t)

	var got payload
	assert.False(t, cache.Get("catalog:product:absent", &got))
}

func TestDelRemovesKeys(t *testing.T) {
	withRedis(t)

	require.NoError(t, cache.Set("a", payload{}, time.Minute))
	require.NoError(t, cache.Set("b", payload{}, time.Minute))
	require.NoError(t, cache.Del("a", "b"))

	var got payload
	assert.False(t, cache.Get("a", &got))
	assert.False(t, cache.Get("b", &got))
}

func TestTTLExpiry(t *testing.T) {
	mr := withRedis(t)

	require.NoError(t, cache.Set("short-lived", payload{Title: "x"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got payload
	assert.False(t, cache.Get("short-lived", &got))
}

// Without a connected client every helper degrades to a no-op instead of
// panicking; catalog reads just fall through to MongoDB.
func TestHelpersNoOpWhenDisconnected(t *testing.T) {
	cache.RDB = nil

	require.NoError(t, cache.Set("k", payload{}, time.Minute))
	require.NoError(t, cache.Del("k"))
	require.NoError(t, cache.Forget("k"))

	var got payload
	assert.False(t, cache.Get("k", &got))
}
