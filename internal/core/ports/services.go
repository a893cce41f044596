// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// ApplyMovementCommand is one requested stock movement
type ApplyMovementCommand struct {
	ProductID int64
	Kind      domain.MovementKind
	Amount    int
	Notes     string
}

// StockMovementService applies stock movements and records every attempt
type StockMovementService interface {
	ApplyMovement(ctx context.Context, cmd ApplyMovementCommand) (*domain.MovementRecord, error)
}

// ProductLifecycleService changes product status and records every attempt
type ProductLifecycleService interface {
	// SetStatusAudited writes newStatus unconditionally. Domain failures are
	// returned in the result, never as a panic or separate error.
	SetStatusAudited(ctx context.Context, productID int64, newStatus domain.ProductStatus, reason string) domain.StatusChangeResult
	Deactivate(ctx context.Context, productID int64, reason string) (*domain.StatusChangeRecord, error)
	Activate(ctx context.Context, productID int64, reason string) (*domain.StatusChangeRecord, error)
	ChangeStatus(ctx context.Context, productID int64, intent domain.StatusIntent) (*domain.StatusChangeRecord, error)
}

// LedgerQueryService reads products and both ledgers
type LedgerQueryService interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetMovement(ctx context.Context, id uuid.UUID) (*domain.MovementRecord, error)
	ListMovements(ctx context.Context, filter MovementFilter) (*Page[domain.MovementRecord], error)
	CountMovements(ctx context.Context, filter MovementFilter) (int64, error)
	GetStatusChange(ctx context.Context, id uuid.UUID) (*domain.StatusChangeRecord, error)
	ListStatusChanges(ctx context.Context, filter StatusChangeFilter) (*Page[domain.StatusChangeRecord], error)
	CountStatusChanges(ctx context.Context, filter StatusChangeFilter) (int64, error)
}
