// Package source provides the upstream row sources a spreadsheet can be read
// from: the public gviz endpoint, the Sheets API and local workbooks.
package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
)

// Source reads one named sheet of a spreadsheet as a labeled table.
type Source interface {
	Name() string
	Rows(ctx context.Context, loc Locator, sheet string) (*gviz.Table, error)
}

// RawSource is implemented by sources that can hand out the unwrapped gviz
// JSON body untouched.
type RawSource interface {
	Raw(ctx context.Context, loc Locator, sheet string) ([]byte, error)
}

// StatusError carries a non-success upstream HTTP status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = http.StatusText(e.Code)
	}
	return fmt.Sprintf("upstream responded %d %s", e.Code, status)
}

func checkSheet(sheet string) error {
	if !ValidSheetName(sheet) {
		return fmt.Errorf("%w: %q", ErrSheetName, sheet)
	}
	return nil
}
