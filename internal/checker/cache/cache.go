// Package cache memoises comparison results in Redis, keyed by the content
// hashes of the document pair and the tokenizer fingerprint.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/redis"
)

const keyPrefix = "similarity:"

// Store is the subset of the Redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

// ResultCache is safe for concurrent use. Concurrent misses for the same key
// share one computation.
type ResultCache struct {
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
	group   singleflight.Group
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates a cache over store. m may be nil.
func New(store Store, ttl time.Duration, m *metrics.Metrics) *ResultCache {
	return &ResultCache{
		store:   store,
		ttl:     ttl,
		metrics: m,
		logger:  logger.WithComponent("result-cache"),
	}
}

// Key derives the cache key for a pair. Scores are symmetric, so the pair is
// ordered before hashing.
func Key(fingerprint, hashA, hashB string) string {
	if hashB < hashA {
		hashA, hashB = hashB, hashA
	}
	sum := sha256.Sum256([]byte(fingerprint + "|" + hashA + "|" + hashB))
	return fmt.Sprintf("%s%x", keyPrefix, sum[:16])
}

// Get returns the cached result for key. Store failures count as misses.
func (c *ResultCache) Get(ctx context.Context, key string) (similarity.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.miss()
		return similarity.Result{}, false
	}
	var result similarity.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.miss()
		return similarity.Result{}, false
	}
	c.hit()
	c.logger.Debug("cache hit", "key", key)
	return result, true
}

// Set stores result under key. Failures are logged, not returned.
func (c *ResultCache) Set(ctx context.Context, key string, result similarity.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for key or computes, stores and
// returns it. The bool reports a cache hit.
func (c *ResultCache) GetOrCompute(
	ctx context.Context,
	key string,
	computeFn func() (similarity.Result, error),
) (similarity.Result, bool, error) {
	if result, ok := c.Get(ctx, key); ok {
		return result, true, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		result, err := computeFn()
		if err != nil {
			return similarity.Result{}, err
		}
		c.Set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return similarity.Result{}, false, err
	}
	return val.(similarity.Result), false, nil
}

// Invalidate deletes every cached result.
func (c *ResultCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

// Stats returns hit and miss counts since start.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ResultCache) hit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *ResultCache) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}
