// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// brand.go provides a Valkey-backed cache of brand identity snapshots.
// Every scene render and guardrail check reads the owning brand's identity,
// so snapshots are kept in Valkey in front of the brand store and dropped
// whenever the identity is edited.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"brandstudio/internal/metrics"
	"brandstudio/internal/models"
)

const (
	// brandKeyPrefix is the Valkey key prefix for cached brand identities.
	brandKeyPrefix = "brand:"

	// DefaultBrandTTL is how long an identity snapshot stays cached.
	DefaultBrandTTL = 5 * time.Minute
)

// IdentitySource is the authoritative lookup the cache sits in front of.
type IdentitySource interface {
	Get(ctx context.Context, brandID uuid.UUID) (models.BrandIdentity, error)
}

// BrandCache serves brand identity snapshots from Valkey, falling back to
// the source on a miss. Valkey errors are logged and never fail a lookup.
type BrandCache struct {
	client *redis.Client
	source IdentitySource
	ttl    time.Duration
}

// NewBrandCache creates a brand cache backed by the given Valkey client.
func NewBrandCache(client *redis.Client, source IdentitySource, ttl time.Duration) *BrandCache {
	if ttl == 0 {
		ttl = DefaultBrandTTL
	}
	return &BrandCache{client: client, source: source, ttl: ttl}
}

// BrandKey returns the cache key for a brand.
func BrandKey(id uuid.UUID) string {
	return brandKeyPrefix + id.String()
}

// Get returns the brand's identity, from Valkey when cached.
func (bc *BrandCache) Get(ctx context.Context, brandID uuid.UUID) (models.BrandIdentity, error) {
	key := BrandKey(brandID)

	val, err := bc.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var id models.BrandIdentity
		if jsonErr := json.Unmarshal(val, &id); jsonErr == nil {
			metrics.BrandCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
			slog.Debug("brand cache hit", "brand_id", brandID)
			return id, nil
		}
		slog.Warn("brand cache entry corrupt, refetching", "brand_id", brandID)
		metrics.BrandCacheLookups.WithLabelValues(metrics.CacheError).Inc()
	case errors.Is(err, redis.Nil):
		metrics.BrandCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		slog.Warn("brand cache get error", "brand_id", brandID, "error", err)
		metrics.BrandCacheLookups.WithLabelValues(metrics.CacheError).Inc()
	}

	id, err := bc.source.Get(ctx, brandID)
	if err != nil {
		return models.BrandIdentity{}, err
	}
	bc.Set(ctx, brandID, id)
	return id, nil
}

// Set stores an identity snapshot with the configured TTL.
func (bc *BrandCache) Set(ctx context.Context, brandID uuid.UUID, id models.BrandIdentity) {
	raw, err := json.Marshal(id)
	if err != nil {
		slog.Warn("brand cache encode error", "brand_id", brandID, "error", err)
		return
	}
	if err := bc.client.Set(ctx, BrandKey(brandID), raw, bc.ttl).Err(); err != nil {
		slog.Warn("brand cache set error", "brand_id", brandID, "error", err)
	}
}

// Invalidate removes a single brand from the cache.
func (bc *BrandCache) Invalidate(ctx context.Context, brandID uuid.UUID) {
	if err := bc.client.Del(ctx, BrandKey(brandID)).Err(); err != nil {
		slog.Warn("brand cache invalidate error", "brand_id", brandID, "error", err)
	}
	slog.Debug("brand cache invalidated", "brand_id", brandID)
}

// InvalidateAll removes all cached brands by scanning for the prefix.
func (bc *BrandCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := bc.client.Scan(ctx, cursor, brandKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("brand cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := bc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("brand cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("brand cache fully cleared", "deleted", deleted)
	}
}
