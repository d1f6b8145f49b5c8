package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetProjectDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return c.get(ctx, projectKey(id))
}

func (c *Cache) GetEtagProjectDetails(ctx context.Context, id uuid.UUID) (string, error) {
	raw, err := c.get(ctx, projectEtagKey(id))
	return string(raw), err
}

func (c *Cache) SetProjectDetails(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration) {
	c.set(ctx, projectKey(id), data, ttl)
}

func (c *Cache) SetEtagProjectDetails(ctx context.Context, id uuid.UUID, etag string, ttl time.Duration) {
	c.set(ctx, projectEtagKey(id), []byte(etag), ttl)
}

func (c *Cache) DeleteProjectDetails(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting cache entries for project #%s...", id)

	if err := c.client.Del(ctx, projectKey(id), projectEtagKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) GetMusicTracks(ctx context.Context) ([]byte, error) {
	return c.get(ctx, musicTracksKey)
}

func (c *Cache) GetEtagMusicTracks(ctx context.Context) (string, error) {
	raw, err := c.get(ctx, musicTracksEtagKey)
	return string(raw), err
}

func (c *Cache) SetMusicTracks(ctx context.Context, data []byte, ttl time.Duration) {
	c.set(ctx, musicTracksKey, data, ttl)
}

func (c *Cache) SetEtagMusicTracks(ctx context.Context, etag string, ttl time.Duration) {
	c.set(ctx, musicTracksEtagKey, []byte(etag), ttl)
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for key %q: %v", key, err)
	}
}

const (
	musicTracksKey     = "music_tracks"
	musicTracksEtagKey = "music_tracks:etag"
)

func projectKey(id uuid.UUID) string {
	return "project_details:" + id.String()
}

func projectEtagKey(id uuid.UUID) string {
	return "project_details:etag:" + id.String()
}
