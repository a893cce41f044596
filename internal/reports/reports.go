// internal/reports/reports.go
package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// Supported export formats
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Meta describes the export being rendered
type Meta struct {
	Title       string
	GeneratedAt time.Time
	ProductID   *int64
	From        *time.Time
	To          *time.Time
}

// Renderer turns report rows into a document
type Renderer interface {
	Render(rows []ports.LedgerReportRow, meta Meta) ([]byte, error)
	ContentType() string
	Extension() string
}

// ForFormat returns the renderer for an export format
func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatXLSX:
		return XLSXRenderer{}, nil
	case FormatPDF:
		return PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

var headers = []string{
	"Recorded At", "Product ID", "Code", "Product", "Kind", "Amount",
	"Previous Qty", "New Qty", "Outcome", "Message", "Notes",
}

// cells flattens a row in header order
func cells(r ports.LedgerReportRow) []string {
	return []string{
		r.RecordedAt.UTC().Format(time.RFC3339),
		optionalInt64(r.ProductID),
		r.ProductCode,
		r.ProductName,
		r.Kind,
		strconv.Itoa(r.Amount),
		optionalInt(r.PreviousQuantity),
		optionalInt(r.NewQuantity),
		r.Outcome,
		r.Message,
		r.Notes,
	}
}

// Scope describes the filter of an export in one line
func (m Meta) Scope() string {
	product := "all products"
	if m.ProductID != nil {
		product = fmt.Sprintf("product %d", *m.ProductID)
	}
	from, to := "beginning", "now"
	if m.From != nil {
		from = m.From.UTC().Format(time.RFC3339)
	}
	if m.To != nil {
		to = m.To.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s, %s to %s", product, from, to)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
