// internal/adapters/db/supplier_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// SupplierRepository implements ports.SupplierStatusProvider
type SupplierRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.SupplierStatusProvider = (*SupplierRepository)(nil)

// NewSupplierRepository creates a supplier repository over q
func NewSupplierRepository(q Querier, logger *slog.Logger) *SupplierRepository {
	return &SupplierRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "supplier")),
	}
}

// IsActive reports whether the supplier is ACTIVE. Unknown suppliers are inactive.
func (r *SupplierRepository) IsActive(ctx context.Context, supplierID int64) (bool, error) {
	var status string
	err := r.q.QueryRow(ctx, `SELECT status FROM suppliers WHERE id = $1`, supplierID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.WarnContext(ctx, "supplier not found", slog.Int64("supplier_id", supplierID))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get supplier status: %w", err)
	}
	return domain.SupplierStatus(status) == domain.SupplierStatusActive, nil
}
