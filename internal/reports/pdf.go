// internal/reports/pdf.go
package reports

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// PDFRenderer prints the movement ledger as an A4 table
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Extension() string { return FormatPDF }

func (PDFRenderer) Render(rows []ports.LedgerReportRow, meta Meta) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(meta.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(meta, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(meta Meta, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(meta.Title, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(meta.Scope(), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(meta.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d records", count), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Recorded At", 2, align.Left),
		h("Product", 2, align.Left),
		h("Kind", 2, align.Left),
		h("Amount", 1, align.Right),
		h("Prev", 1, align.Right),
		h("New", 1, align.Right),
		h("Outcome", 1, align.Center),
		h("Message", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(r ports.LedgerReportRow) core.Row {
	outcome := props.Text{Size: 7, Align: align.Center, Top: 1}
	if r.Outcome != "SUCCESS" {
		outcome.Color = colorError
		outcome.Style = fontstyle.Bold
	}

	product := r.ProductCode
	if product == "" {
		product = optionalInt64(r.ProductID)
	}

	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}

	return row.New(6).Add(
		cell(r.RecordedAt.UTC().Format("2006-01-02 15:04"), 2, align.Left),
		cell(product, 2, align.Left),
		cell(r.Kind, 2, align.Left),
		cell(strconv.Itoa(r.Amount), 1, align.Right),
		cell(optionalInt(r.PreviousQuantity), 1, align.Right),
		cell(optionalInt(r.NewQuantity), 1, align.Right),
		col.New(1).Add(text.New(r.Outcome, outcome)),
		cell(r.Message, 2, align.Left),
	)
}
