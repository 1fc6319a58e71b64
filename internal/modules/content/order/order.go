// Package order filters content records down to the active ones and sorts
// them by display order.
package order

import (
	"cmp"
	"slices"

	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/normalize"
)

// Active returns the items that pass keep, sorted ascending by rank. The sort
// is stable, so equal ranks keep their sheet order, and the input slice is
// never modified.
func Active[T any](items []T, keep func(T) bool, rank func(T) int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return out
}

// Menu returns the active menu folders in display order.
func Menu(items []models.MenuItem) []models.MenuItem {
	return Active(items,
		func(m models.MenuItem) bool { return m.Active },
		func(m models.MenuItem) int { return m.DisplayOrder })
}

// Pages returns every active page in display order.
func Pages(pages []models.Page) []models.Page {
	return Active(pages,
		func(p models.Page) bool { return p.Active },
		func(p models.Page) int { return p.DisplayOrder })
}

// FolderPages returns the active pages of one folder in display order.
func FolderPages(pages []models.Page, folderID string) []models.Page {
	return Active(pages,
		func(p models.Page) bool { return p.Active && normalize.SameID(p.FolderID, folderID) },
		func(p models.Page) int { return p.DisplayOrder })
}

// PageContent returns the active blocks of one page in display order.
func PageContent(blocks []models.ContentBlock, pageID string) []models.ContentBlock {
	return Active(blocks,
		func(b models.ContentBlock) bool { return b.Active && normalize.SameID(b.PageID, pageID) },
		func(b models.ContentBlock) int { return b.DisplayOrder })
}
