package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Batch listings change rarely, so the front end caches them per token:
// L1 in-memory + optional L2 Redis. Extraction results are never cached —
// each run re-fetches everything and writes a fresh manifest.
var batchCache *tieredCache

// Cache metrics — atomic counters for thread-safe access.
var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

// tieredCache implements L1 (memory) + L2 (Redis) caching.
type tieredCache struct {
	l1              sync.Map // key → *cacheEntry
	rdb             *redis.Client
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InitCache sets up the cache. Call after Init(). redisURL can be empty to
// disable L2.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	c := &tieredCache{ttl: ttl, maxEntries: maxEntries, cleanupInterval: cleanupInterval}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		} else {
			rdb := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
			} else {
				c.rdb = rdb
				slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
			}
		}
	}

	batchCache = c
	slog.Info("cache: initialized",
		slog.Duration("ttl", ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", maxEntries))

	go c.cleanupLoop()
}

// CacheKey builds a deterministic cache key from parts. Tokens go through
// here too, so only a hash ever reaches Redis or the logs.
func CacheKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("ge:%x", hash[:12]) // 24-char hex prefix
}

// CacheGetBatches tries L1, then L2. On L2 hit, populates L1.
func CacheGetBatches(ctx context.Context, key string) ([]BatchInfo, bool) {
	if batchCache == nil {
		cacheMisses.Add(1)
		return nil, false
	}

	if val, ok := batchCache.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			var out []BatchInfo
			if json.Unmarshal(entry.data, &out) == nil {
				slog.Debug("cache: L1 hit", slog.String("key", key))
				cacheHits.Add(1)
				return out, true
			}
		}
		batchCache.l1.Delete(key) // expired or corrupt
	}

	if batchCache.rdb != nil {
		data, err := batchCache.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var out []BatchInfo
			if json.Unmarshal(data, &out) == nil {
				slog.Debug("cache: L2 hit", slog.String("key", key))
				cacheHits.Add(1)
				batchCache.l1.Store(key, &cacheEntry{
					data:      data,
					expiresAt: time.Now().Add(batchCache.ttl),
				})
				return out, true
			}
		}
	}

	cacheMisses.Add(1)
	return nil, false
}

// CacheSetBatches stores a batch listing in both L1 and L2.
func CacheSetBatches(ctx context.Context, key string, batches []BatchInfo) {
	if batchCache == nil {
		return
	}

	data, err := json.Marshal(batches)
	if err != nil {
		return
	}

	batchCache.evictIfNeeded()

	batchCache.l1.Store(key, &cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(batchCache.ttl),
	})

	if batchCache.rdb != nil {
		if err := batchCache.rdb.Set(ctx, key, data, batchCache.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// cleanupLoop periodically drops expired L1 entries.
func (c *tieredCache) cleanupLoop() {
	if c.cleanupInterval <= 0 {
		return
	}
	for range time.Tick(c.cleanupInterval) {
		now := time.Now()
		c.l1.Range(func(key, val any) bool {
			if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
				c.l1.Delete(key)
			}
			return true
		})
	}
}

// evictIfNeeded removes entries when L1 exceeds maxEntries: expired entries
// first, then the entries closest to expiry until under the limit.
func (c *tieredCache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if entry, ok := val.(*cacheEntry); ok && now.After(entry.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})
	if count < c.maxEntries {
		return
	}

	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			if entry, ok := val.(*cacheEntry); ok && entry.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
