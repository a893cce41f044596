// internal/adapters/redis_adapter/supplier_cache.go
package redis_a

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// CachedSupplierStatus memoizes supplier activity checks. Supplier status is
// reference data that changes rarely; a zero TTL disables caching so every
// movement sees the committed value.
type CachedSupplierStatus struct {
	next   ports.SupplierStatusProvider
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.SupplierStatusProvider = (*CachedSupplierStatus)(nil)

// NewCachedSupplierStatus wraps next
func NewCachedSupplierStatus(next ports.SupplierStatusProvider, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *CachedSupplierStatus {
	return &CachedSupplierStatus{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "supplier_cache")),
	}
}

// SupplierKey is the cache key for a supplier's activity flag
func SupplierKey(id int64) string {
	return BuildKey(PrefixSupplier, strconv.FormatInt(id, 10), "active")
}

// IsActive answers from cache when possible
func (c *CachedSupplierStatus) IsActive(ctx context.Context, supplierID int64) (bool, error) {
	if c.ttl <= 0 {
		return c.next.IsActive(ctx, supplierID)
	}

	var active bool
	err := c.cache.GetOrSet(ctx, SupplierKey(supplierID), &active, func() (interface{}, error) {
		return c.next.IsActive(ctx, supplierID)
	}, c.ttl)
	if err != nil {
		return false, err
	}
	return active, nil
}

// Invalidate drops the cached flag for a supplier
func (c *CachedSupplierStatus) Invalidate(ctx context.Context, supplierID int64) {
	if err := c.cache.Delete(ctx, SupplierKey(supplierID)); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate supplier status",
			slog.Int64("supplier_id", supplierID),
			slog.String("error", err.Error()))
	}
}
