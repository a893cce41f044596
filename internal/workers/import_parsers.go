// internal/workers/import_parsers.go
package workers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// ImportRow is one movement read from an uploaded file. Err is set when the
// row could not be parsed; such rows never reach the movement engine.
type ImportRow struct {
	Line      int
	ProductID int64
	Kind      domain.MovementKind
	Amount    int
	Notes     string
	Err       error
}

// ParseMovementSheet reads the first sheet of a workbook laid out as
// product_id | kind | amount | notes, with a header row
func ParseMovementSheet(filePath string) ([]ImportRow, error) {
	file, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil
	}

	var rows []ImportRow
	line := 0
	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		line++
		if line == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}

		if get(0) == "" && get(1) == "" && get(2) == "" {
			return nil
		}
		rows = append(rows, parseSheetRow(line, get(0), get(1), get(2), get(3)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel rows: %w", err)
	}

	return rows, nil
}

func parseSheetRow(line int, productID, kind, amount, notes string) ImportRow {
	row := ImportRow{Line: line, Notes: notes}

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		row.Err = fmt.Errorf("invalid product id %q", productID)
		return row
	}
	row.ProductID = id

	k, err := domain.ParseMovementKind(kind)
	if err != nil {
		row.Err = err
		return row
	}
	row.Kind = k

	n, err := strconv.Atoi(amount)
	if err != nil {
		// Spreadsheets often store whole numbers as "12.0"
		f, ferr := strconv.ParseFloat(amount, 64)
		if ferr != nil || f != float64(int(f)) {
			row.Err = fmt.Errorf("invalid amount %q", amount)
			return row
		}
		n = int(f)
	}
	row.Amount = n

	return row
}

// ParseDeliveryNote extracts the received lines of a supplier delivery note.
// Every line becomes a PURCHASE.
func ParseDeliveryNote(filePath string) ([]ImportRow, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	return ParseDeliveryNoteLines(lines), nil
}

var (
	deliveryHeaderRe = regexp.MustCompile(`(?i)(PRODUCT.*QTY|PRODUCT.*QUANTITY|ITEM.*QTY)`)
	deliveryFooterRe = regexp.MustCompile(`(?i)^(TOTAL|RECEIVED BY|SIGNATURE)`)
	deliveryLineRe   = regexp.MustCompile(`^#?(\d+)\s+(?:x\s*)?(\d+)(?:\s+(.*))?$`)
)

// ParseDeliveryNoteLines reads "product_id quantity [description]" lines
// between the table header and the footer. Without a header the whole text
// is scanned.
func ParseDeliveryNoteLines(lines []string) []ImportRow {
	start := 0
	for i, line := range lines {
		if deliveryHeaderRe.MatchString(line) {
			start = i + 1
			break
		}
	}

	var rows []ImportRow
	for i := start; i < len(lines); i++ {
		line := strings.Join(strings.Fields(lines[i]), " ")
		if line == "" {
			continue
		}
		if deliveryFooterRe.MatchString(line) {
			break
		}

		m := deliveryLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		row := ImportRow{Line: i + 1, Kind: domain.MovementPurchase, Notes: strings.TrimSpace(m[3])}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			row.Err = fmt.Errorf("invalid product id %q", m[1])
		}
		qty, err := strconv.Atoi(m[2])
		if err != nil && row.Err == nil {
			row.Err = fmt.Errorf("invalid quantity %q", m[2])
		}
		row.ProductID, row.Amount = id, qty
		rows = append(rows, row)
	}

	return rows
}
