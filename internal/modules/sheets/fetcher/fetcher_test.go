package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	tables map[string]*gviz.Table
	err    error
	seen   []source.Locator
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Rows(_ context.Context, loc source.Locator, sheet string) (*gviz.Table, error) {
	f.seen = append(f.seen, loc)
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tables[sheet]
	if !ok {
		return nil, &source.StatusError{Code: 400}
	}
	return t, nil
}

var defaultLoc = source.Locator{SheetID: "default-sheet"}

func TestFetchSuccess(t *testing.T) {
	menu := gviz.FromMatrix([]string{"id"}, [][]gviz.Value{{gviz.Number(1)}})
	src := &fakeSource{tables: map[string]*gviz.Table{SheetMenu: menu}}
	f := New(src, defaultLoc, nil)

	table, err := f.Fetch(context.Background(), SheetMenu, "")
	require.NoError(t, err)
	assert.Same(t, menu, table)
	assert.Equal(t, []source.Locator{defaultLoc}, src.seen)
}

func TestFetchOverrideLocator(t *testing.T) {
	src := &fakeSource{tables: map[string]*gviz.Table{SheetPages: {}}}
	f := New(src, defaultLoc, nil)

	_, err := f.Fetch(context.Background(), SheetPages, "https://docs.google.com/spreadsheets/d/other-sheet/edit")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), SheetPages, "not a sheet url")
	require.NoError(t, err)

	assert.Equal(t, []source.Locator{{SheetID: "other-sheet"}, defaultLoc}, src.seen)
}

func TestFetchTransportFailureDegradesToEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	f := New(src, defaultLoc, nil)

	for _, sheet := range []string{SheetMenu, SheetPages, SheetContent, SheetTemplates} {
		t.Run(sheet, func(t *testing.T) {
			table, err := f.Fetch(context.Background(), sheet, "")
			require.Error(t, err)
			assert.Equal(t, 0, table.Len())
			assert.ErrorIs(t, err, ErrTransport)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, sheet, fetchErr.Sheet)
		})
	}
}

func TestFetchMalformedPayload(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("decode: %w", gviz.ErrMalformed)}
	f := New(src, defaultLoc, nil)

	_, err := f.Fetch(context.Background(), SheetContent, "")
	assert.ErrorIs(t, err, ErrPayload)
	assert.ErrorIs(t, err, gviz.ErrMalformed)
}

func TestFetchSettingsFailureReturnsDefaults(t *testing.T) {
	src := &fakeSource{err: &source.StatusError{Code: 500}}
	f := New(src, defaultLoc, nil)

	table, err := f.Fetch(context.Background(), SheetSettings, "")
	require.NoError(t, err)

	got := map[string]string{}
	for _, row := range table.Rows {
		got[row.Get("key").String()] = row.Get("value").String()
	}
	for _, key := range []string{"siteName", "logo", "footerText"} {
		assert.NotEmpty(t, got[key], key)
	}
}
