// internal/core/services/ledger_query.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// Page size bounds for ledger listings
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// LedgerQueries serves read-only views over products and both ledgers
type LedgerQueries struct {
	products      ports.ProductReader
	movements     ports.MovementLedger
	statusChanges ports.StatusChangeLedger
	logger        *slog.Logger
}

// Statically assert that *LedgerQueries implements the LedgerQueryService interface.
var _ ports.LedgerQueryService = (*LedgerQueries)(nil)

// NewLedgerQueries creates a new query service
func NewLedgerQueries(products ports.ProductReader, movements ports.MovementLedger, statusChanges ports.StatusChangeLedger, logger *slog.Logger) *LedgerQueries {
	return &LedgerQueries{
		products:      products,
		movements:     movements,
		statusChanges: statusChanges,
		logger:        logger.With(slog.String("service", "ledger_query")),
	}
}

// GetProduct returns the current product snapshot
func (s *LedgerQueries) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetMovement returns one movement record
func (s *LedgerQueries) GetMovement(ctx context.Context, id uuid.UUID) (*domain.MovementRecord, error) {
	rec, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movement record: %w", err)
	}
	return rec, nil
}

// ListMovements returns a page of movement records, newest first
func (s *LedgerQueries) ListMovements(ctx context.Context, filter ports.MovementFilter) (*ports.Page[domain.MovementRecord], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.movements.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement records: %w", err)
	}

	total, err := s.movements.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count movement records: %w", err)
	}

	s.logger.DebugContext(ctx, "listed movement records",
		slog.Int("returned", len(items)),
		slog.Int64("total", total))

	return &ports.Page[domain.MovementRecord]{Items: items, Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}, nil
}

// CountMovements counts movement records matching filter
func (s *LedgerQueries) CountMovements(ctx context.Context, filter ports.MovementFilter) (int64, error) {
	n, err := s.movements.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count movement records: %w", err)
	}
	return n, nil
}

// GetStatusChange returns one status-change record
func (s *LedgerQueries) GetStatusChange(ctx context.Context, id uuid.UUID) (*domain.StatusChangeRecord, error) {
	rec, err := s.statusChanges.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status change record: %w", err)
	}
	return rec, nil
}

// ListStatusChanges returns a page of status-change records, newest first
func (s *LedgerQueries) ListStatusChanges(ctx context.Context, filter ports.StatusChangeFilter) (*ports.Page[domain.StatusChangeRecord], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.statusChanges.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list status change records: %w", err)
	}

	total, err := s.statusChanges.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count status change records: %w", err)
	}

	return &ports.Page[domain.StatusChangeRecord]{Items: items, Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}, nil
}

// CountStatusChanges counts status-change records matching filter
func (s *LedgerQueries) CountStatusChanges(ctx context.Context, filter ports.StatusChangeFilter) (int64, error) {
	n, err := s.statusChanges.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count status change records: %w", err)
	}
	return n, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
