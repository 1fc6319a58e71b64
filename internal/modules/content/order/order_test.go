package order

import (
	"testing"

	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/normalize"
	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/stretchr/testify/assert"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func blockID(b models.ContentBlock) string { return b.ID }

func TestPageContentEndToEnd(t *testing.T) {
	table := gviz.FromMatrix([]string{"id", "page_id", "content_type", "display_order"}, [][]gviz.Value{
		{gviz.String("a"), gviz.Number(7), gviz.String("text"), gviz.String("3")},
		{gviz.String("b"), gviz.String("7"), gviz.String("text"), gviz.String("1")},
		{gviz.String("c"), gviz.Number(7), gviz.String("text"), gviz.String("abc")},
		{gviz.String("d"), gviz.Number(8), gviz.String("text"), gviz.String("0")},
	})
	got := PageContent(normalize.ContentBlocks(table), "7")
	assert.Equal(t, []string{"c", "b", "a"}, ids(got, blockID))
	for _, b := range got {
		assert.Equal(t, "7", b.PageID)
	}
}

func TestActiveDropsInactiveAndKeepsUnspecified(t *testing.T) {
	table := gviz.FromMatrix([]string{"id", "page_id", "display_order", "active"}, [][]gviz.Value{
		{gviz.String("yes"), gviz.Number(1), gviz.Number(1), gviz.String("yes")},
		{gviz.String("blank"), gviz.Number(1), gviz.Number(2), gviz.Blank},
		{gviz.String("no"), gviz.Number(1), gviz.Number(3), gviz.String("no")},
	})
	got := PageContent(normalize.ContentBlocks(table), "1")
	assert.Equal(t, []string{"yes", "blank"}, ids(got, blockID))
}

func TestActiveIsStableAndDoesNotMutate(t *testing.T) {
	in := []models.Page{
		{ID: "1", FolderID: "f", DisplayOrder: 2, Active: true},
		{ID: "2", FolderID: "f", DisplayOrder: 1, Active: true},
		{ID: "3", FolderID: "f", DisplayOrder: 2, Active: true},
		{ID: "4", FolderID: "g", DisplayOrder: 0, Active: true},
		{ID: "5", FolderID: "f", DisplayOrder: 0, Active: false},
	}
	snapshot := append([]models.Page(nil), in...)

	got := FolderPages(in, " f ")
	assert.Equal(t, []string{"2", "1", "3"}, ids(got, func(p models.Page) string { return p.ID }))
	assert.Equal(t, snapshot, in)

	all := Pages(in)
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(all, func(p models.Page) string { return p.ID }))
}

func TestMenu(t *testing.T) {
	got := Menu([]models.MenuItem{
		{ID: "b", DisplayOrder: 5, Active: true},
		{ID: "a", DisplayOrder: -1, Active: true},
		{ID: "x", DisplayOrder: 0, Active: false},
	})
	assert.Equal(t, []string{"a", "b"}, ids(got, func(m models.MenuItem) string { return m.ID }))
	assert.Empty(t, Menu(nil))
}

func TestActiveIsIdempotent(t *testing.T) {
	in := []models.ContentBlock{
		{ID: "a", PageID: "1", DisplayOrder: 2, Active: true},
		{ID: "b", PageID: "1", DisplayOrder: 1, Active: true},
		{ID: "c", PageID: "1", DisplayOrder: 2, Active: true},
		{ID: "d", PageID: "1", DisplayOrder: 0, Active: false},
		{ID: "e", PageID: "1", DisplayOrder: 1, Active: true},
	}
	once := PageContent(in, "1")
	twice := PageContent(once, "1")
	assert.Equal(t, []string{"b", "e", "a", "c"}, ids(once, blockID))
	assert.Equal(t, once, twice)
}
