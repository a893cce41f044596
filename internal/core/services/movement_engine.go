// internal/core/services/movement_engine.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// StockMovementEngine validates and applies stock movements. Every attempt
// that names a valid kind and amount leaves exactly one MovementRecord.
type StockMovementEngine struct {
	uow    ports.UnitOfWork
	guards []movementGuard
	events ports.LedgerEventPublisher
	logger *slog.Logger
}

// Statically assert that *StockMovementEngine implements the StockMovementService interface.
var _ ports.StockMovementService = (*StockMovementEngine)(nil)

// NewStockMovementEngine creates a new movement engine. events may be nil.
func NewStockMovementEngine(uow ports.UnitOfWork, events ports.LedgerEventPublisher, logger *slog.Logger) *StockMovementEngine {
	return &StockMovementEngine{
		uow:    uow,
		guards: movementGuards(),
		events: events,
		logger: logger.With(slog.String("service", "stock_movement")),
	}
}

// ApplyMovement runs the movement pipeline inside one transaction.
//
// Requests with an unknown kind, a non-positive amount or oversized notes
// fail with domain.ErrInvalidMovement and leave no record. Rejections are
// recorded and committed first, then returned as *domain.MovementRejectedError.
func (s *StockMovementEngine) ApplyMovement(ctx context.Context, cmd ports.ApplyMovementCommand) (*domain.MovementRecord, error) {
	class, err := validateMovementCommand(cmd)
	if err != nil {
		return nil, err
	}

	var (
		record   *domain.MovementRecord
		rejected error
	)

	err = s.uow.Execute(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		record, rejected = nil, nil

		product, err := repos.Products.GetForUpdate(ctx, cmd.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			record = domain.NewRejectedMovement(nil, cmd.Kind, cmd.Amount,
				fmt.Sprintf(msgProductNotFoundFmt, cmd.ProductID), cmd.Notes)
			rejected = domain.ErrProductNotFound
			return s.append(ctx, repos, record)
		}
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", cmd.ProductID, err)
		}

		in := guardInput{product: product, class: class, amount: cmd.Amount, suppliers: repos.Suppliers}
		for _, g := range s.guards {
			rej, err := g.check(ctx, in)
			if err != nil {
				return fmt.Errorf("%s guard failed: %w", g.name, err)
			}
			if rej == nil {
				continue
			}
			record = domain.NewRejectedMovement(&product.ID, cmd.Kind, cmd.Amount, rej.message, cmd.Notes)
			record.PreviousQuantity = rej.previous
			rejected = rej.sentinel
			return s.append(ctx, repos, record)
		}

		previous := product.CurrentStock
		next := cmd.Kind.Apply(previous, cmd.Amount)
		if next < 0 {
			return fmt.Errorf("movement would leave product %d with negative stock %d", product.ID, next)
		}

		if err := repos.Products.UpdateStock(ctx, product.ID, next); err != nil {
			return fmt.Errorf("failed to commit stock: %w", err)
		}

		record = domain.NewSuccessfulMovement(product.ID, cmd.Kind, cmd.Amount, previous, next, cmd.Notes)
		return s.append(ctx, repos, record)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "stock movement failed",
			slog.Int64("product_id", cmd.ProductID),
			slog.String("kind", string(cmd.Kind)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to apply movement: %w", err)
	}

	s.publish(ctx, record)

	if rejected != nil {
		s.logger.WarnContext(ctx, "stock movement rejected",
			slog.Int64("product_id", cmd.ProductID),
			slog.String("kind", string(cmd.Kind)),
			slog.Int("amount", cmd.Amount),
			slog.String("reason", record.Message))
		return nil, &domain.MovementRejectedError{Sentinel: rejected, Record: record}
	}

	s.logger.InfoContext(ctx, "stock movement applied",
		slog.Int64("product_id", cmd.ProductID),
		slog.String("kind", string(cmd.Kind)),
		slog.Int("previous_quantity", *record.PreviousQuantity),
		slog.Int("new_quantity", *record.NewQuantity))

	return record, nil
}

func (s *StockMovementEngine) append(ctx context.Context, repos ports.TxRepositories, record *domain.MovementRecord) error {
	record.PrepareForStorage()
	if err := repos.Movements.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append movement record: %w", err)
	}
	return nil
}

func (s *StockMovementEngine) publish(ctx context.Context, record *domain.MovementRecord) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMovementRecorded(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "failed to publish movement event",
			slog.String("record_id", record.ID.String()),
			slog.String("error", err.Error()))
	}
}

func validateMovementCommand(cmd ports.ApplyMovementCommand) (domain.MovementClass, error) {
	class, ok := domain.Classify(cmd.Kind)
	if !ok {
		return class, fmt.Errorf("%w: unknown movement kind %q", domain.ErrInvalidMovement, cmd.Kind)
	}
	if cmd.Amount < 1 {
		return class, fmt.Errorf("%w: amount must be at least 1", domain.ErrInvalidMovement)
	}
	if len([]rune(strings.TrimSpace(cmd.Notes))) > domain.MaxMessageLength {
		return class, fmt.Errorf("%w: notes exceed %d characters", domain.ErrInvalidMovement, domain.MaxMessageLength)
	}
	return class, nil
}
