// internal/core/ports/events.go
package ports

import (
	"context"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// LedgerEventPublisher announces committed ledger entries to background workers
type LedgerEventPublisher interface {
	PublishMovementRecorded(ctx context.Context, rec *domain.MovementRecord) error
	PublishStatusChanged(ctx context.Context, rec *domain.StatusChangeRecord) error
}
