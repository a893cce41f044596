// internal/core/ports/report.go
package ports

import (
	"context"
	"time"
)

// LedgerReportRow is one movement record joined with its product, as
// written to exported reports
type LedgerReportRow struct {
	RecordedAt       time.Time
	ProductID        *int64
	ProductCode      string
	ProductName      string
	Kind             string
	Amount           int
	PreviousQuantity *int
	NewQuantity      *int
	Outcome          string
	Message          string
	Notes            string
}

// LedgerReportReader reads movement history for exports
type LedgerReportReader interface {
	MovementReport(ctx context.Context, req ExportRequest) ([]LedgerReportRow, error)
}
