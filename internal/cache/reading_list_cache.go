// Package cache holds the read-through cache for user reading lists.
//
// Entries are stored as the JSON projection returned by
// GET /api/reading-list/:userId under a per-user version. Readers take the
// version before querying the store and write back under that version only;
// Invalidate bumps the version, so a list read before a write can never be
// served after it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/microservices/http-api/dto"

	"github.com/redis/go-redis/v9"
)

type RedisReadingListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses url, applies password when set and verifies the connection.
func NewRedisClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisReadingListCache(client *redis.Client, ttl time.Duration) *RedisReadingListCache {
	return &RedisReadingListCache{client: client, ttl: ttl}
}

func readingListKey(userID, version int64) string {
	return fmt.Sprintf("reading-list:user:%d:v%d", userID, version)
}

// versionKey never expires. Letting it lapse would reset the counter and
// expose lists written under an older version.
func versionKey(userID int64) string {
	return fmt.Sprintf("reading-list:user:%d:version", userID)
}

// Version returns the current cache generation for userID, 0 if never invalidated.
func (c *RedisReadingListCache) Version(ctx context.Context, userID int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get reading list version: %w", err)
	}
	return v, nil
}

// Get returns the list cached for userID at version. The bool is false on a miss.
func (c *RedisReadingListCache) Get(ctx context.Context, userID, version int64) ([]dto.ReadingListEntryResponse, bool, error) {
	raw, err := c.client.Get(ctx, readingListKey(userID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get reading list cache: %w", err)
	}

	var entries []dto.ReadingListEntryResponse
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode reading list cache: %w", err)
	}
	return entries, true, nil
}

// Set stores entries under version, which must be the value Version returned
// before entries were read from the store.
func (c *RedisReadingListCache) Set(ctx context.Context, userID, version int64, entries []dto.ReadingListEntryResponse) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode reading list cache: %w", err)
	}
	if err := c.client.Set(ctx, readingListKey(userID, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set reading list cache: %w", err)
	}
	return nil
}

// Invalidate moves every given user to a new version. Lists stored under the
// old one become unreachable and expire with their TTL.
func (c *RedisReadingListCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, versionKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate reading list cache: %w", err)
	}
	return nil
}

// Ping checks the redis connection for health reporting.
func (c *RedisReadingListCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Noop never stores anything; it is used when caching is disabled.
type Noop struct{}

func (Noop) Version(context.Context, int64) (int64, error) { return 0, nil }

func (Noop) Get(context.Context, int64, int64) ([]dto.ReadingListEntryResponse, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, int64, int64, []dto.ReadingListEntryResponse) error { return nil }

func (Noop) Invalidate(context.Context, ...int64) error { return nil }
