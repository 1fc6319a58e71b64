package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuPayload = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","reqId":"0","status":"ok","table":{"cols":[{"id":"A","label":"id","type":"number"},{"id":"B","label":"folder_name","type":"string"}],"rows":[{"c":[{"v":1.0},{"v":"Home"}]}]}});`

func TestGVizRows(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(menuPayload))
	}))
	defer srv.Close()

	g := NewGViz(GVizOptions{BaseURL: srv.URL + "/d", UserAgent: "test-agent"})
	table, err := g.Rows(context.Background(), Locator{SheetID: "sheet123"}, "main_menu")
	require.NoError(t, err)

	assert.Equal(t, "/d/sheet123/gviz/tq", gotPath)
	assert.Equal(t, "tqx=out:json&sheet=main_menu", gotQuery)
	assert.Equal(t, "test-agent", gotUA)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Home", table.Rows[0].Get("folder_name").String())
}

func TestGVizStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewGViz(GVizOptions{BaseURL: srv.URL})
	_, err := g.Rows(context.Background(), Locator{SheetID: "x"}, "pages")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "404")
}

func TestGVizRejectsBadInput(t *testing.T) {
	g := NewGViz(GVizOptions{BaseURL: "http://127.0.0.1:1"})
	_, err := g.Rows(context.Background(), Locator{SheetID: "x"}, "bad name")
	assert.ErrorIs(t, err, ErrSheetName)

	_, err = g.Rows(context.Background(), Locator{Path: "/tmp/a.xlsx"}, "pages")
	assert.ErrorIs(t, err, ErrInvalidLocator)
}
