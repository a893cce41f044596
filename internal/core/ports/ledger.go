// internal/core/ports/ledger.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// MovementLedger is the append-only store of movement attempts
type MovementLedger interface {
	Append(ctx context.Context, rec *domain.MovementRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MovementRecord, error)
	Find(ctx context.Context, filter MovementFilter) ([]*domain.MovementRecord, error)
	Count(ctx context.Context, filter MovementFilter) (int64, error)
}

// StatusChangeLedger is the append-only store of status-change attempts
type StatusChangeLedger interface {
	Append(ctx context.Context, rec *domain.StatusChangeRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StatusChangeRecord, error)
	Find(ctx context.Context, filter StatusChangeFilter) ([]*domain.StatusChangeRecord, error)
	Count(ctx context.Context, filter StatusChangeFilter) (int64, error)
}

// MovementFilter narrows movement ledger queries. Zero values are ignored.
type MovementFilter struct {
	ProductID     *int64
	Kind          *domain.MovementKind
	Outcome       *domain.OperationOutcome
	NotesContains string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// StatusChangeFilter narrows status-change ledger queries. Zero values are ignored.
type StatusChangeFilter struct {
	ProductID      *int64
	PreviousStatus *domain.ProductStatus
	NewStatus      *domain.ProductStatus
	Outcome        *domain.OperationOutcome
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// Page is a slice of ledger records with the total matching count
type Page[T any] struct {
	Items      []*T  `json:"items"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
