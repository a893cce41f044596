// internal/workers/ledger_event_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// ProductCacheInvalidator drops cached product snapshots
type ProductCacheInvalidator interface {
	Invalidate(ctx context.Context, id int64)
}

// Notifier queues an outbound alert
type Notifier interface {
	Notify(ctx context.Context, n NotificationPayload) error
}

// LedgerEventProcessor reacts to committed ledger entries. It runs after the
// ledger transaction, so failures here never affect the recorded outcome.
type LedgerEventProcessor struct {
	cache             ProductCacheInvalidator
	notifier          Notifier
	lowStockThreshold int
	logger            *slog.Logger
}

// NewLedgerEventProcessor creates a new processor. cache may be nil when
// product snapshots are not cached.
func NewLedgerEventProcessor(cache ProductCacheInvalidator, notifier Notifier, lowStockThreshold int, logger *slog.Logger) *LedgerEventProcessor {
	return &LedgerEventProcessor{
		cache:             cache,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.With(slog.String("processor", "ledger_events")),
	}
}

// HandleMovementRecorded invalidates the product snapshot and raises low
// stock and rejection alerts
func (p *LedgerEventProcessor) HandleMovementRecorded(ctx context.Context, t *asynq.Task) error {
	var rec domain.MovementRecord
	if err := json.Unmarshal(t.Payload(), &rec); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if rec.ProductID != nil && p.cache != nil {
		p.cache.Invalidate(ctx, *rec.ProductID)
	}

	p.logger.DebugContext(ctx, "movement recorded",
		slog.String("record_id", rec.ID.String()),
		slog.String("kind", string(rec.Kind)),
		slog.String("outcome", string(rec.Outcome)))

	switch {
	case !rec.Succeeded():
		return p.notify(ctx, NotificationPayload{
			Kind:      NotificationMovementRejected,
			ProductID: rec.ProductID,
			Subject:   fmt.Sprintf("Stock movement rejected: %s", rec.Kind),
			Body:      fmt.Sprintf("%s of %d units was rejected: %s", rec.Kind, rec.Amount, rec.Message),
		})
	case !rec.Kind.IsEntry() && rec.NewQuantity != nil && *rec.NewQuantity <= p.lowStockThreshold:
		return p.notify(ctx, NotificationPayload{
			Kind:      NotificationLowStock,
			ProductID: rec.ProductID,
			Subject:   fmt.Sprintf("Low stock for product %d", *rec.ProductID),
			Body: fmt.Sprintf("%s left product %d with %d units (threshold %d)",
				rec.Kind, *rec.ProductID, *rec.NewQuantity, p.lowStockThreshold),
		})
	}

	return nil
}

// HandleStatusChanged invalidates the product snapshot and raises an alert
// when a rejected deactivation discontinued the product
func (p *LedgerEventProcessor) HandleStatusChanged(ctx context.Context, t *asynq.Task) error {
	var rec domain.StatusChangeRecord
	if err := json.Unmarshal(t.Payload(), &rec); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if p.cache != nil {
		p.cache.Invalidate(ctx, rec.ProductID)
	}

	p.logger.DebugContext(ctx, "status change recorded",
		slog.String("record_id", rec.ID.String()),
		slog.Int64("product_id", rec.ProductID),
		slog.String("new_status", string(rec.NewStatus)),
		slog.String("outcome", string(rec.Outcome)))

	if !rec.Succeeded() && rec.NewStatus == domain.ProductStatusDiscontinued {
		productID := rec.ProductID
		return p.notify(ctx, NotificationPayload{
			Kind:      NotificationAutoDiscontinued,
			ProductID: &productID,
			Subject:   fmt.Sprintf("Product %d discontinued", rec.ProductID),
			Body:      fmt.Sprintf("Deactivation of product %d was refused and the product was discontinued: %s", rec.ProductID, rec.Message),
		})
	}

	return nil
}

func (p *LedgerEventProcessor) notify(ctx context.Context, n NotificationPayload) error {
	if p.notifier == nil {
		p.logger.InfoContext(ctx, "stock alert",
			slog.String("kind", string(n.Kind)),
			slog.String("subject", n.Subject))
		return nil
	}
	if err := p.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("failed to queue %s notification: %w", n.Kind, err)
	}
	return nil
}
