// internal/adapters/redis_adapter/product_cache.go
package redis_a

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// ProductSnapshotCache caches product reads for the query side. Writes
// happen inside a unit of work, which calls Invalidate after commit.
type ProductSnapshotCache struct {
	next   ports.ProductReader
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.ProductReader = (*ProductSnapshotCache)(nil)

// NewProductSnapshotCache wraps next with a read-through cache
func NewProductSnapshotCache(next ports.ProductReader, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *ProductSnapshotCache {
	return &ProductSnapshotCache{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "product_cache")),
	}
}

// ProductKey is the cache key for a product snapshot
func ProductKey(id int64) string {
	return BuildKey(PrefixProduct, strconv.FormatInt(id, 10))
}

// GetByID reads through the cache
func (c *ProductSnapshotCache) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := c.cache.GetOrSet(ctx, ProductKey(id), &p, func() (interface{}, error) {
		return c.next.GetByID(ctx, id)
	}, c.ttl)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Invalidate drops the cached snapshot for id
func (c *ProductSnapshotCache) Invalidate(ctx context.Context, id int64) {
	if err := c.cache.Delete(ctx, ProductKey(id)); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate product snapshot",
			slog.Int64("product_id", id),
			slog.String("error", err.Error()))
	}
}
