// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/feature/prices/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "prices"
)

// PriceStore is the read and write side of the Price Store.
type PriceStore interface {
	usecase.PriceRepository
	usecase.PriceWriter
}

var _ PriceStore = (*CachingPriceRepository)(nil)

// CachingPriceRepository decorates a PriceStore with Redis caching of per-symbol series.
// A nil client disables caching.
type CachingPriceRepository struct {
	inner     PriceStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPriceRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner PriceStore, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch writes through and invalidates the series of every touched symbol.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, records []entity.PriceRecord) error {
	if err := c.inner.UpsertBatch(ctx, records); err != nil {
		return err
	}
	if c.rdb == nil || len(records) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	keys := make([]string, 0, 1)
	for _, r := range records {
		k := c.cacheKey(r.Symbol)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	// Best effort: a stale entry expires with the TTL
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidation failed", "keys", len(keys), "error", err)
	}
	return nil
}

// FindBySymbol checks the cache first, then falls back to the inner store.
// Empty results are not cached.
func (c *CachingPriceRepository) FindBySymbol(ctx context.Context, symbol string) ([]entity.PriceRecord, error) {
	if c.rdb == nil {
		return c.inner.FindBySymbol(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindBySymbol(ctx, symbol)
	if err != nil || len(out) == 0 {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// CountInYear is not cached.
func (c *CachingPriceRepository) CountInYear(ctx context.Context, year int) (int64, error) {
	return c.inner.CountInYear(ctx, year)
}

func (c *CachingPriceRepository) cacheKey(symbol string) string {
	return c.namespace + ":" + safe(strings.ToUpper(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
