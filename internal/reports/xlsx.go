// internal/reports/xlsx.go
package reports

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// XLSXRenderer writes the movement ledger as a single-sheet workbook
type XLSXRenderer struct{}

func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Extension() string { return FormatXLSX }

// Render builds the workbook. Quantities are written as numbers so the sheet
// can be summed; missing quantities stay blank.
func (XLSXRenderer) Render(rows []ports.LedgerReportRow, meta Meta) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Movements")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, r := range rows {
		dataRow := sheet.AddRow()
		for i, value := range cells(r) {
			cell := dataRow.AddCell()
			switch {
			case i == 5:
				cell.SetInt(r.Amount)
			case i == 6 && r.PreviousQuantity != nil:
				cell.SetInt(*r.PreviousQuantity)
			case i == 7 && r.NewQuantity != nil:
				cell.SetInt(*r.NewQuantity)
			default:
				cell.SetString(value)
			}
		}
	}

	for i := range headers {
		sheet.SetColWidth(i+1, i+1, 18)
	}

	info, err := file.AddSheet("Export")
	if err != nil {
		return nil, fmt.Errorf("failed to add info sheet: %w", err)
	}
	for _, kv := range [][2]string{
		{"Title", meta.Title},
		{"Scope", meta.Scope()},
		{"Generated At", meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST")},
		{"Rows", fmt.Sprintf("%d", len(rows))},
	} {
		row := info.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}
	return buffer.Bytes(), nil
}
