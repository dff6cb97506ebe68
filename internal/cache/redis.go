package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/seatbook/config"
	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds flight manifests. Keys are scoped to one process
// instance because the booking state they mirror lives in that process,
// and carry the flight generation the manifest was read at, so a manifest
// written after a newer mutation is never served.
type RedisCache struct {
	client      *redis.Client
	instance    string
	manifestTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, manifestTTL time.Duration) *RedisCache {
	return newRedisCache(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), manifestTTL)
}

func newRedisCache(client *redis.Client, manifestTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      client,
		instance:    uuid.NewString(),
		manifestTTL: manifestTTL,
	}
}

// GetManifest returns (nil, nil) on a cache miss. A cached empty flight
// comes back as a non-nil empty slice.
func (c *RedisCache) GetManifest(ctx context.Context, flightNumber string, generation uint64) ([]domain.ManifestEntry, error) {
	data, err := c.client.Get(ctx, c.manifestKey(flightNumber, generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	manifest := make([]domain.ManifestEntry, 0)
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (c *RedisCache) SetManifest(ctx context.Context, flightNumber string, generation uint64, manifest []domain.ManifestEntry) error {
	if manifest == nil {
		manifest = []domain.ManifestEntry{}
	}
	payload, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.manifestKey(flightNumber, generation), payload, c.manifestTTL).Err()
}

// InvalidateManifest drops every cached generation of the flight. Reads
// are already safe without it; this only frees superseded entries early.
func (c *RedisCache) InvalidateManifest(ctx context.Context, flightNumber string) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.manifestPattern(flightNumber), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) manifestKey(flightNumber string, generation uint64) string {
	return fmt.Sprintf("cache:%s:manifest:%s:%d", c.instance, flightNumber, generation)
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func (c *RedisCache) manifestPattern(flightNumber string) string {
	return fmt.Sprintf("cache:%s:manifest:%s:*", c.instance, globEscaper.Replace(flightNumber))
}
