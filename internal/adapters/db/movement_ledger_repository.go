// internal/adapters/db/movement_ledger_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

const movementTable = "movement_records"

var movementColumns = []string{
	"id", "product_id", "kind", "amount", "previous_quantity", "new_quantity",
	"outcome", "message", "notes", "recorded_at",
}

// MovementLedgerRepository implements ports.MovementLedger. Rows are only
// ever inserted; the schema rejects updates and deletes.
type MovementLedgerRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.MovementLedger = (*MovementLedgerRepository)(nil)

// NewMovementLedgerRepository creates a movement ledger over q
func NewMovementLedgerRepository(q Querier, logger *slog.Logger) *MovementLedgerRepository {
	return &MovementLedgerRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "movement_ledger")),
	}
}

// Append inserts one movement record
func (r *MovementLedgerRepository) Append(ctx context.Context, rec *domain.MovementRecord) error {
	rec.PrepareForStorage()

	query, args, err := psql.Insert(movementTable).
		Columns(movementColumns...).
		Values(
			rec.ID, rec.ProductID, string(rec.Kind), rec.Amount,
			rec.PreviousQuantity, rec.NewQuantity, string(rec.Outcome),
			rec.Message, rec.Notes, rec.RecordedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert movement record: %w", err)
	}

	r.logger.DebugContext(ctx, "movement record appended",
		slog.String("id", rec.ID.String()),
		slog.String("kind", string(rec.Kind)),
		slog.String("outcome", string(rec.Outcome)))
	return nil
}

// FindByID retrieves a movement record
func (r *MovementLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MovementRecord, error) {
	query, args, err := psql.Select(movementColumns...).From(movementTable).Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rec, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: movement %s", domain.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement record: %w", err)
	}
	return rec, nil
}

// Find lists movement records newest first
func (r *MovementLedgerRepository) Find(ctx context.Context, filter ports.MovementFilter) ([]*domain.MovementRecord, error) {
	query, args, err := BuildMovementQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement records: %w", err)
	}

	return ScanMany(rows, func(rows pgx.Rows) (*domain.MovementRecord, error) {
		return scanMovement(rows)
	})
}

// Count returns the number of records matching filter, ignoring paging
func (r *MovementLedgerRepository) Count(ctx context.Context, filter ports.MovementFilter) (int64, error) {
	query, args, err := applyMovementFilter(psql.Select("COUNT(*)").From(movementTable), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movement records: %w", err)
	}
	return count, nil
}

// BuildMovementQuery renders the filtered, paged select for the movement ledger
func BuildMovementQuery(filter ports.MovementFilter) squirrel.SelectBuilder {
	qb := applyMovementFilter(psql.Select(movementColumns...).From(movementTable), filter).
		OrderBy("recorded_at DESC", "id DESC")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}
	return qb
}

func applyMovementFilter(qb squirrel.SelectBuilder, filter ports.MovementFilter) squirrel.SelectBuilder {
	if filter.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Kind != nil {
		qb = qb.Where(squirrel.Eq{"kind": string(*filter.Kind)})
	}
	if filter.Outcome != nil {
		qb = qb.Where(squirrel.Eq{"outcome": string(*filter.Outcome)})
	}
	if filter.NotesContains != "" {
		qb = qb.Where(squirrel.ILike{"notes": "%" + filter.NotesContains + "%"})
	}
	if filter.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"recorded_at": *filter.From})
	}
	if filter.To != nil {
		qb = qb.Where(squirrel.Lt{"recorded_at": *filter.To})
	}
	return qb
}

func scanMovement(row pgx.Row) (*domain.MovementRecord, error) {
	var (
		rec           domain.MovementRecord
		kind, outcome string
	)
	err := row.Scan(
		&rec.ID, &rec.ProductID, &kind, &rec.Amount,
		&rec.PreviousQuantity, &rec.NewQuantity, &outcome,
		&rec.Message, &rec.Notes, &rec.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Kind = domain.MovementKind(kind)
	rec.Outcome = domain.OperationOutcome(outcome)
	return &rec, nil
}
