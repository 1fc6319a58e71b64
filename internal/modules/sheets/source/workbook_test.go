package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("content")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"id", "page_id", "content_type", "display_order", "content"},
		{1, 7, "כותרת", 3, "h2: שלום"},
		{2, 7, "text", "abc", "<p>hi</p>"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("content", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "site.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookRows(t *testing.T) {
	path := writeWorkbook(t)
	w := NewWorkbook("")

	table, err := w.Rows(context.Background(), Locator{Path: path}, "content")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "page_id", "content_type", "display_order", "content"}, table.Labels)
	require.Equal(t, 2, table.Len())
	n, ok := table.Rows[0].Get("page_id").Number()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)
	assert.Equal(t, "כותרת", table.Rows[0].Get("content_type").String())
	assert.Equal(t, gviz.KindString, table.Rows[1].Get("display_order").Kind())
}

func TestWorkbookDefaultPathAndMissingSheet(t *testing.T) {
	path := writeWorkbook(t)
	w := NewWorkbook(path)

	_, err := w.Rows(context.Background(), Locator{}, "templates")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.Code)

	_, err = NewWorkbook("").Rows(context.Background(), Locator{}, "content")
	assert.ErrorIs(t, err, ErrInvalidLocator)
}

func TestParseCell(t *testing.T) {
	assert.Equal(t, gviz.KindBlank, parseCell("").Kind())
	assert.Equal(t, gviz.KindNumber, parseCell("12").Kind())
	assert.Equal(t, gviz.KindNumber, parseCell("1.5").Kind())
	assert.Equal(t, gviz.KindString, parseCell("NaN").Kind())
	assert.Equal(t, gviz.KindString, parseCell("0x10").Kind())
	assert.Equal(t, gviz.KindString, parseCell("yes").Kind())
}

func TestValuesToTable(t *testing.T) {
	table := valuesToTable([][]interface{}{
		{"key", "value"},
		{"siteName", "Site"},
		{"count", 3.0},
	})
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "3", table.Rows[1].Get("value").String())
	assert.Equal(t, 0, valuesToTable(nil).Len())
}
