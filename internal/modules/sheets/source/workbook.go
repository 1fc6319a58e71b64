package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/xuri/excelize/v2"
)

// Workbook reads sheets from a local .xlsx file, typically an export of the
// live spreadsheet. The first row of every tab holds the column labels.
type Workbook struct {
	defaultPath string
}

func NewWorkbook(defaultPath string) *Workbook {
	return &Workbook{defaultPath: strings.TrimSpace(defaultPath)}
}

func (w *Workbook) Name() string { return "workbook" }

func (w *Workbook) Rows(ctx context.Context, loc Locator, sheet string) (*gviz.Table, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, err
	}
	path := loc.Path
	if path == "" {
		path = w.defaultPath
	}
	if path == "" {
		return nil, fmt.Errorf("%w: workbook path is empty", ErrInvalidLocator)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return nil, &StatusError{Code: 404, Status: "sheet " + sheet + " not found"}
		}
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &gviz.Table{}, nil
	}

	labels := make([]string, len(rows[0]))
	for i, label := range rows[0] {
		labels[i] = strings.TrimSpace(label)
	}
	cells := make([][]gviz.Value, 0, len(rows)-1)
	for _, line := range rows[1:] {
		row := make([]gviz.Value, len(line))
		for i, raw := range line {
			row[i] = parseCell(raw)
		}
		cells = append(cells, row)
	}
	return gviz.FromMatrix(labels, cells), nil
}

// parseCell keeps numeric-looking cells numeric, as the gviz endpoint does.
func parseCell(s string) gviz.Value {
	if s == "" {
		return gviz.Blank
	}
	trimmed := strings.TrimSpace(s)
	if strings.ContainsAny(trimmed, "xXpP_") {
		return gviz.String(s)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return gviz.Number(f)
	}
	return gviz.String(s)
}
