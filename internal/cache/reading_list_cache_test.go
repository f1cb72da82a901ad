package cache

import (
	"context"
	"testing"
	"time"

	"bookshelf/internal/microservices/http-api/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T, ttl time.Duration) (*RedisReadingListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisReadingListCache(client, ttl), mr
}

func sampleEntries() []dto.ReadingListEntryResponse {
	return []dto.ReadingListEntryResponse{{
		ID: 3, UserID: 1, Status: "Reading",
		Books: dto.ReadingListBook{Title: "Dune", Author: "Frank Herbert", Genre: "SF"},
	}}
}

func TestReadingListKeys(t *testing.T) {
	assert.Equal(t, "reading-list:user:42:v7", readingListKey(42, 7))
	assert.Equal(t, "reading-list:user:42:version", versionKey(42))
}

func TestRedisReadingListCache_Miss(t *testing.T) {
	c, _ := setupRedisCache(t, time.Minute)
	ctx := context.Background()

	v, err := c.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	entries, ok, err := c.Get(ctx, 1, v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)
}

func TestRedisReadingListCache_SetThenGet(t *testing.T) {
	c, mr := setupRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, 0, sampleEntries()))

	entries, ok, err := c.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleEntries(), entries)
	assert.Equal(t, time.Minute, mr.TTL(readingListKey(1, 0)))
}

func TestRedisReadingListCache_Expiry(t *testing.T) {
	c, mr := setupRedisCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, 0, sampleEntries()))
	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisReadingListCache_InvalidateManyUsers(t *testing.T) {
	c, mr := setupRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, 0, sampleEntries()))
	require.NoError(t, c.Set(ctx, 2, 0, sampleEntries()))
	require.NoError(t, c.Set(ctx, 3, 0, sampleEntries()))

	require.NoError(t, c.Invalidate(ctx, 1, 2))

	for _, id := range []int64{1, 2} {
		v, err := c.Version(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
		_, ok, err := c.Get(ctx, id, v)
		require.NoError(t, err)
		assert.False(t, ok, "user %d", id)
	}

	v, err := c.Version(ctx, 3)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, 3, v)
	require.NoError(t, err)
	assert.True(t, ok, "untouched user keeps its list")
	assert.False(t, mr.Exists(versionKey(3)))
}

func TestRedisReadingListCache_InvalidateNoUsers(t *testing.T) {
	c, mr := setupRedisCache(t, time.Minute)

	require.NoError(t, c.Invalidate(context.Background()))
	assert.Empty(t, mr.Keys())
}

// A list read before a concurrent write must not be served after it.
func TestRedisReadingListCache_StaleSetAfterInvalidate(t *testing.T) {
	c, _ := setupRedisCache(t, time.Minute)
	ctx := context.Background()

	readVersion, err := c.Version(ctx, 1)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, 1, readVersion)
	require.NoError(t, err)
	require.False(t, ok)

	// writer removes an entry and invalidates while the reader queries the store
	require.NoError(t, c.Invalidate(ctx, 1))

	// reader writes back what it read
	require.NoError(t, c.Set(ctx, 1, readVersion, sampleEntries()))

	current, err := c.Version(ctx, 1)
	require.NoError(t, err)
	_, ok, err = c.Get(ctx, 1, current)
	require.NoError(t, err)
	assert.False(t, ok, "stale list must be unreachable")
}

func TestRedisReadingListCache_Ping(t *testing.T) {
	c, mr := setupRedisCache(t, time.Minute)

	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestRedisReadingListCache_CorruptValue(t *testing.T) {
	c, mr := setupRedisCache(t, time.Minute)
	require.NoError(t, mr.Set(readingListKey(1, 0), "not json"))

	_, ok, err := c.Get(context.Background(), 1, 0)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "decode reading list cache")
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	require.NoError(t, c.Set(ctx, 1, 0, sampleEntries()))
	v, err := c.Version(ctx, 1)
	require.NoError(t, err)
	entries, ok, err := c.Get(ctx, 1, v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)
	assert.NoError(t, c.Invalidate(ctx, 1, 2))
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url", "")
	assert.ErrorContains(t, err, "parse redis url")
}
