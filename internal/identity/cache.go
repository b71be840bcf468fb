package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Account UUIDs are stable across name changes, but names can be freed
// and reclaimed by other accounts, so entries still expire.
const cacheTTL = 24 * time.Hour

// UUIDCache caches username to account-UUID lookups. Cache failures are
// best-effort: a miss or a broken cache just means another API call.
type UUIDCache interface {
	Get(ctx context.Context, username string) (uuid.UUID, bool)
	Put(ctx context.Context, username string, id uuid.UUID)
}

// cacheKey normalizes the username; Minecraft names are case-insensitive.
func cacheKey(username string) string {
	return fmt.Sprintf("mcuuid:%s", strings.ToLower(username))
}

// MemoryCache is an in-process TTL cache used when no Redis is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	id      uuid.UUID
	expires time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get implements UUIDCache.
func (c *MemoryCache) Get(_ context.Context, username string) (uuid.UUID, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(username)]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return uuid.Nil, false
	}
	return entry.id, true
}

// Put implements UUIDCache.
func (c *MemoryCache) Put(_ context.Context, username string, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(username)] = memoryEntry{id: id, expires: time.Now().Add(cacheTTL)}

	// Opportunistic sweep keeps the map from growing without bound.
	if len(c.entries) > 4096 {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
	}
}

// RedisCache shares UUID lookups across instances.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get implements UUIDCache.
func (c *RedisCache) Get(ctx context.Context, username string) (uuid.UUID, bool) {
	val, err := c.client.Get(ctx, cacheKey(username)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Put implements UUIDCache.
func (c *RedisCache) Put(ctx context.Context, username string, id uuid.UUID) {
	c.client.Set(ctx, cacheKey(username), id.String(), cacheTTL)
}
