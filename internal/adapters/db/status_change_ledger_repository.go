// internal/adapters/db/status_change_ledger_repository.go
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

const statusChangeTable = "status_change_records"

var statusChangeColumns = []string{
	"id", "product_id", "previous_status", "new_status", "reason",
	"outcome", "message", "changed_at",
}

// StatusChangeLedgerRepository implements ports.StatusChangeLedger
type StatusChangeLedgerRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.StatusChangeLedger = (*StatusChangeLedgerRepository)(nil)

// NewStatusChangeLedgerRepository creates a status-change ledger over q
func NewStatusChangeLedgerRepository(q Querier, logger *slog.Logger) *StatusChangeLedgerRepository {
	return &StatusChangeLedgerRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "status_change_ledger")),
	}
}

// Append inserts one status-change record
func (r *StatusChangeLedgerRepository) Append(ctx context.Context, rec *domain.StatusChangeRecord) error {
	rec.PrepareForStorage()

	var previous *string
	if rec.PreviousStatus != nil {
		s := string(*rec.PreviousStatus)
		previous = &s
	}

	query, args, err := psql.Insert(statusChangeTable).
		Columns(statusChangeColumns...).
		Values(
			rec.ID, rec.ProductID, previous, string(rec.NewStatus), rec.Reason,
			string(rec.Outcome), rec.Message, rec.ChangedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert status change record: %w", err)
	}

	r.logger.DebugContext(ctx, "status change record appended",
		slog.String("id", rec.ID.String()),
		slog.Int64("product_id", rec.ProductID),
		slog.String("outcome", string(rec.Outcome)))
	return nil
}

// FindByID retrieves a status-change record
func (r *StatusChangeLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StatusChangeRecord, error) {
	query, args, err := psql.Select(statusChangeColumns...).From(statusChangeTable).Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rec, err := scanStatusChange(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: status change %s", domain.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status change record: %w", err)
	}
	return rec, nil
}

// Find lists status-change records newest first
func (r *StatusChangeLedgerRepository) Find(ctx context.Context, filter ports.StatusChangeFilter) ([]*domain.StatusChangeRecord, error) {
	query, args, err := BuildStatusChangeQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query status change records: %w", err)
	}

	return ScanMany(rows, func(rows pgx.Rows) (*domain.StatusChangeRecord, error) {
		return scanStatusChange(rows)
	})
}

// Count returns the number of records matching filter, ignoring paging
func (r *StatusChangeLedgerRepository) Count(ctx context.Context, filter ports.StatusChangeFilter) (int64, error) {
	query, args, err := applyStatusChangeFilter(psql.Select("COUNT(*)").From(statusChangeTable), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count status change records: %w", err)
	}
	return count, nil
}

// BuildStatusChangeQuery renders the filtered, paged select for the status-change ledger
func BuildStatusChangeQuery(filter ports.StatusChangeFilter) squirrel.SelectBuilder {
	qb := applyStatusChangeFilter(psql.Select(statusChangeColumns...).From(statusChangeTable), filter).
		OrderBy("changed_at DESC", "id DESC")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}
	return qb
}

func applyStatusChangeFilter(qb squirrel.SelectBuilder, filter ports.StatusChangeFilter) squirrel.SelectBuilder {
	if filter.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.PreviousStatus != nil {
		qb = qb.Where(squirrel.Eq{"previous_status": string(*filter.PreviousStatus)})
	}
	if filter.NewStatus != nil {
		qb = qb.Where(squirrel.Eq{"new_status": string(*filter.NewStatus)})
	}
	if filter.Outcome != nil {
		qb = qb.Where(squirrel.Eq{"outcome": string(*filter.Outcome)})
	}
	if filter.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"changed_at": *filter.From})
	}
	if filter.To != nil {
		qb = qb.Where(squirrel.Lt{"changed_at": *filter.To})
	}
	return qb
}

func scanStatusChange(row pgx.Row) (*domain.StatusChangeRecord, error) {
	var (
		rec                domain.StatusChangeRecord
		previous           *string
		newStatus, outcome string
	)
	err := row.Scan(
		&rec.ID, &rec.ProductID, &previous, &newStatus, &rec.Reason,
		&outcome, &rec.Message, &rec.ChangedAt,
	)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		s := domain.ProductStatus(*previous)
		rec.PreviousStatus = &s
	}
	rec.NewStatus = domain.ProductStatus(newStatus)
	rec.Outcome = domain.OperationOutcome(outcome)
	return &rec, nil
}
