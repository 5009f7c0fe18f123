package slicecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/db"
	"github.com/sliceboard/sliceboard/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "slice_ids:"

// store is the consumer interface for the materialization cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache is the side mapping from slice identity to materialized row ids.
// Keeping the ids out of the Slice value keeps slices immutable and makes
// invalidation explicit. Keys incorporate a dataset tag, so entries written
// against one dataset are unreachable once the data changes.
type Cache struct {
	store      store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	datasetTag string
	ttl        time.Duration
}

// New creates a materialization cache. datasetTag identifies the dataset the
// cached ids were computed from (see dataset.Fingerprint). Entries expire
// after ttl; zero means no expiration.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger, datasetTag string, ttl time.Duration) *Cache {
	return &Cache{store: s, cacheTotal: cacheTotal, logger: logger, datasetTag: datasetTag, ttl: ttl}
}

// Get returns the cached row ids for a slice, if present.
func (c *Cache) Get(ctx context.Context, sliceName string) ([]string, bool) {
	key := c.cacheKey(sliceName)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached slice ids", zap.String("slice", sliceName), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		c.logger.Warn("Corrupt cached slice ids", zap.String("slice", sliceName), zap.Error(err))
		c.incCache("miss")
		return nil, false
	}

	c.incCache("hit")
	return ids, true
}

// Put stores the materialized row ids for a slice. A cache write failure is
// logged but not fatal; the caller already holds the result.
func (c *Cache) Put(ctx context.Context, sliceName string, ids []string) {
	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.Warn("Failed to encode slice ids", zap.String("slice", sliceName), zap.Error(err))
		return
	}
	var setErr error
	if c.ttl > 0 {
		setErr = c.store.SetWithTTL(ctx, c.cacheKey(sliceName), data, c.ttl)
	} else {
		setErr = c.store.Set(ctx, c.cacheKey(sliceName), data)
	}
	if setErr != nil {
		c.logger.Warn("Failed to cache slice ids", zap.String("slice", sliceName), zap.Error(setErr))
	}
}

// Invalidate drops the cached ids for one slice. Must be called whenever the
// slice's predicates or transform change.
func (c *Cache) Invalidate(ctx context.Context, sliceName string) error {
	if err := c.store.Del(ctx, c.cacheKey(sliceName)); err != nil {
		return fmt.Errorf("invalidate slice %q: %w", sliceName, err)
	}
	return nil
}

// InvalidateAll drops every cached materialization, across all dataset tags.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	keys, err := c.store.Scan(ctx, cacheKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan slice cache: %w", err)
	}
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return fmt.Errorf("invalidate %q: %w", key, err)
		}
	}
	return nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the dataset tag together with the slice name, so
// arbitrary user-authored names are safe as store keys and ids cached
// against a stale dataset are never served.
func (c *Cache) cacheKey(sliceName string) string {
	h := sha256.Sum256([]byte(c.datasetTag + "\x00" + sliceName))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
