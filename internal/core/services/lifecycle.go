// internal/core/services/lifecycle.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

const (
	msgStatusChangeApplied = "status change applied successfully"
	msgUnexpectedErrorFmt  = "unexpected error: %s"
)

// ProductLifecycle changes product status. Every attempt is recorded as a
// StatusChangeRecord.
type ProductLifecycle struct {
	uow    ports.UnitOfWork
	events ports.LedgerEventPublisher
	logger *slog.Logger
}

// Statically assert that *ProductLifecycle implements the ProductLifecycleService interface.
var _ ports.ProductLifecycleService = (*ProductLifecycle)(nil)

// NewProductLifecycle creates a new lifecycle service. events may be nil.
func NewProductLifecycle(uow ports.UnitOfWork, events ports.LedgerEventPublisher, logger *slog.Logger) *ProductLifecycle {
	return &ProductLifecycle{
		uow:    uow,
		events: events,
		logger: logger.With(slog.String("service", "product_lifecycle")),
	}
}

// SetStatusAudited writes newStatus with no transition check. The record is
// always persisted; result.Err describes a failed outcome. When the write
// itself fails the transaction is rolled back and the ERROR record is
// appended in a fresh one.
func (s *ProductLifecycle) SetStatusAudited(ctx context.Context, productID int64, newStatus domain.ProductStatus, reason string) domain.StatusChangeResult {
	if !newStatus.IsValid() {
		return domain.StatusChangeResult{Err: fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)}
	}

	rec := &domain.StatusChangeRecord{ProductID: productID, NewStatus: newStatus, Reason: reason}
	var outcome error

	err := s.uow.Execute(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		rec.PreviousStatus, outcome = nil, nil

		product, err := repos.Products.GetForUpdate(ctx, productID)
		if errors.Is(err, domain.ErrProductNotFound) {
			outcome = fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
			markFailed(rec, fmt.Sprintf(msgProductNotFoundFmt, productID))
			return appendStatusChange(ctx, repos, rec)
		}
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", productID, err)
		}

		previous := product.Status
		rec.PreviousStatus = &previous

		if err := repos.Products.UpdateStatus(ctx, productID, newStatus); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		markApplied(rec)
		return appendStatusChange(ctx, repos, rec)
	})
	if err != nil {
		return s.recordUnexpected(ctx, rec, err)
	}

	if outcome != nil {
		s.logger.WarnContext(ctx, "status change recorded as failed",
			slog.Int64("product_id", productID),
			slog.String("new_status", string(newStatus)),
			slog.String("reason", rec.Message))
		return domain.StatusChangeResult{Record: rec, Err: outcome}
	}

	s.logger.InfoContext(ctx, "status change applied",
		slog.Int64("product_id", productID),
		slog.String("previous_status", string(*rec.PreviousStatus)),
		slog.String("new_status", string(newStatus)))

	s.publish(ctx, rec)
	return domain.StatusChangeResult{Record: rec}
}

// recordUnexpected persists the ERROR record for a failure that aborted the
// status-change transaction.
func (s *ProductLifecycle) recordUnexpected(ctx context.Context, rec *domain.StatusChangeRecord, cause error) domain.StatusChangeResult {
	rec.PreviousStatus = nil
	markFailed(rec, fmt.Sprintf(msgUnexpectedErrorFmt, cause.Error()))

	s.logger.ErrorContext(ctx, "status change failed",
		slog.Int64("product_id", rec.ProductID),
		slog.String("new_status", string(rec.NewStatus)),
		slog.String("error", cause.Error()))

	err := s.uow.Execute(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		return appendStatusChange(ctx, repos, rec)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record status change failure",
			slog.Int64("product_id", rec.ProductID),
			slog.String("error", err.Error()))
		return domain.StatusChangeResult{Err: errors.Join(cause, err)}
	}

	return domain.StatusChangeResult{Record: rec, Err: cause}
}

// Deactivate applies the stock-guarded deactivation edges. An ACTIVE product
// that still holds stock is committed as DISCONTINUED and the call fails with
// domain.ErrCannotDeactivateWithStock. The persisted record is returned
// together with any failure.
func (s *ProductLifecycle) Deactivate(ctx context.Context, productID int64, reason string) (*domain.StatusChangeRecord, error) {
	return s.transition(ctx, productID, reason, domain.ProductStatusInactive, domain.DecideDeactivation)
}

// Activate moves any non-ACTIVE product to ACTIVE. The persisted record is
// returned together with any failure.
func (s *ProductLifecycle) Activate(ctx context.Context, productID int64, reason string) (*domain.StatusChangeRecord, error) {
	return s.transition(ctx, productID, reason, domain.ProductStatusActive, domain.DecideActivation)
}

// ChangeStatus dispatches a status intent to the matching operation
func (s *ProductLifecycle) ChangeStatus(ctx context.Context, productID int64, intent domain.StatusIntent) (*domain.StatusChangeRecord, error) {
	switch intent.Kind {
	case domain.IntentSetStatus:
		res := s.SetStatusAudited(ctx, productID, intent.NewStatus, intent.Reason)
		return res.Record, res.Err
	case domain.IntentDeactivate:
		return s.Deactivate(ctx, productID, intent.Reason)
	case domain.IntentActivate:
		return s.Activate(ctx, productID, intent.Reason)
	default:
		return nil, fmt.Errorf("%w: unknown intent %q", domain.ErrInvalidStatus, intent.Kind)
	}
}

func (s *ProductLifecycle) transition(
	ctx context.Context,
	productID int64,
	reason string,
	requested domain.ProductStatus,
	decide func(*domain.Product) domain.Transition,
) (*domain.StatusChangeRecord, error) {
	var (
		rec       *domain.StatusChangeRecord
		outcome   error
		committed bool
	)

	err := s.uow.Execute(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		rec = &domain.StatusChangeRecord{ProductID: productID, NewStatus: requested, Reason: reason}
		outcome, committed = nil, false

		product, err := repos.Products.GetForUpdate(ctx, productID)
		if errors.Is(err, domain.ErrProductNotFound) {
			outcome = fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
			markFailed(rec, fmt.Sprintf(msgProductNotFoundFmt, productID))
			return appendStatusChange(ctx, repos, rec)
		}
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", productID, err)
		}

		t := decide(product)
		previous := product.Status
		rec.PreviousStatus = &previous

		if t.Commit {
			rec.NewStatus = t.Target
			if err := repos.Products.UpdateStatus(ctx, productID, t.Target); err != nil {
				return fmt.Errorf("failed to update status: %w", err)
			}
			committed = true
		}

		if t.Err != nil {
			outcome = t.Err
			markFailed(rec, t.Err.Error())
		} else {
			markApplied(rec)
		}
		return appendStatusChange(ctx, repos, rec)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "status transition failed",
			slog.Int64("product_id", productID),
			slog.String("requested_status", string(requested)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	if committed {
		s.publish(ctx, rec)
	}

	if outcome != nil {
		s.logger.WarnContext(ctx, "status transition rejected",
			slog.Int64("product_id", productID),
			slog.String("requested_status", string(requested)),
			slog.Bool("side_effect_committed", committed),
			slog.String("reason", rec.Message))
		return rec, outcome
	}

	s.logger.InfoContext(ctx, "status transition applied",
		slog.Int64("product_id", productID),
		slog.String("previous_status", string(*rec.PreviousStatus)),
		slog.String("new_status", string(rec.NewStatus)))

	return rec, nil
}

func (s *ProductLifecycle) publish(ctx context.Context, rec *domain.StatusChangeRecord) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatusChanged(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "failed to publish status change event",
			slog.String("record_id", rec.ID.String()),
			slog.String("error", err.Error()))
	}
}

func markApplied(rec *domain.StatusChangeRecord) {
	rec.Outcome = domain.OutcomeSuccess
	rec.Message = msgStatusChangeApplied
}

func markFailed(rec *domain.StatusChangeRecord, message string) {
	rec.Outcome = domain.OutcomeError
	rec.Message = message
}

func appendStatusChange(ctx context.Context, repos ports.TxRepositories, rec *domain.StatusChangeRecord) error {
	rec.PrepareForStorage()
	if err := repos.StatusChanges.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to append status change record: %w", err)
	}
	return nil
}
