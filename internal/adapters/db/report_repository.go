// internal/adapters/db/report_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// ReportRepository reads movement history for exports over a separate
// database/sql handle, so long report scans stay off the request pool
type ReportRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ ports.LedgerReportReader = (*ReportRepository)(nil)

// NewReportRepository creates a report reader over db
func NewReportRepository(db *sql.DB, logger *slog.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "report")),
	}
}

// OpenReportDB opens the pgx stdlib handle used by ReportRepository
func OpenReportDB(config *Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	return db, nil
}

// BuildMovementReportQuery renders the export query, oldest first
func BuildMovementReportQuery(req ports.ExportRequest) squirrel.SelectBuilder {
	qb := psql.Select(
		"m.recorded_at", "m.product_id",
		"COALESCE(p.code, '')", "COALESCE(p.name, '')",
		"m.kind", "m.amount", "m.previous_quantity", "m.new_quantity",
		"m.outcome", "m.message", "m.notes",
	).
		From("movement_records m").
		LeftJoin("products p ON p.id = m.product_id").
		OrderBy("m.recorded_at ASC", "m.id ASC")

	if req.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"m.product_id": *req.ProductID})
	}
	if req.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"m.recorded_at": *req.From})
	}
	if req.To != nil {
		qb = qb.Where(squirrel.Lt{"m.recorded_at": *req.To})
	}
	return qb
}

// MovementReport returns every movement matching req
func (r *ReportRepository) MovementReport(ctx context.Context, req ports.ExportRequest) ([]ports.LedgerReportRow, error) {
	query, args, err := BuildMovementReportQuery(req).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement report: %w", err)
	}
	defer rows.Close()

	report := make([]ports.LedgerReportRow, 0)
	for rows.Next() {
		var (
			row              ports.LedgerReportRow
			productID        sql.NullInt64
			previous, newQty sql.NullInt64
		)
		if err := rows.Scan(
			&row.RecordedAt, &productID, &row.ProductCode, &row.ProductName,
			&row.Kind, &row.Amount, &previous, &newQty,
			&row.Outcome, &row.Message, &row.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if productID.Valid {
			id := productID.Int64
			row.ProductID = &id
		}
		row.PreviousQuantity = nullIntPtr(previous)
		row.NewQuantity = nullIntPtr(newQty)
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	r.logger.DebugContext(ctx, "movement report read", slog.Int("rows", len(report)))
	return report, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
