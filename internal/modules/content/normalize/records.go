package normalize

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/blocks"
	"github.com/sheetsite/core/internal/modules/sheets/gviz"
)

// pick returns the first non-blank cell among the candidate column labels.
// Sheets in the wild mix snake_case and camelCase headers.
func pick(row gviz.Row, labels ...string) gviz.Value {
	for _, l := range labels {
		if v := row.Get(l); !v.IsBlank() {
			return v
		}
	}
	return gviz.Blank
}

// slugOr keeps an explicit slug and derives one from name when it is blank.
func slugOr(v gviz.Value, name string) string {
	if s := strings.TrimSpace(Text(v)); s != "" {
		return s
	}
	return slug.Make(name)
}

// MenuItem maps a main_menu row.
func MenuItem(row gviz.Row) models.MenuItem {
	name := Text(pick(row, "folder_name", "folderName", "name"))
	return models.MenuItem{
		ID:               ID(pick(row, "id")),
		Name:             name,
		DisplayOrder:     Order(pick(row, "display_order", "displayOrder")),
		Active:           Active(row.Get("active")),
		Slug:             slugOr(row.Get("slug"), name),
		ShortDescription: Text(pick(row, "short_description", "shortDescription")),
	}
}

// Page maps a pages row.
func Page(row gviz.Row) models.Page {
	name := Text(pick(row, "page_name", "pageName", "name"))
	return models.Page{
		ID:              ID(pick(row, "id")),
		FolderID:        ID(pick(row, "folder_id", "folderId")),
		Name:            name,
		DisplayOrder:    Order(pick(row, "display_order", "displayOrder")),
		Active:          Active(row.Get("active")),
		Slug:            slugOr(row.Get("slug"), name),
		MetaDescription: Text(pick(row, "meta_description", "metaDescription")),
		SEOTitle:        Text(pick(row, "seo_title", "seoTitle")),
	}
}

// ContentBlock maps a content row and resolves its kind.
func ContentBlock(row gviz.Row) models.ContentBlock {
	return models.ContentBlock{
		ID:           ID(pick(row, "id")),
		PageID:       ID(pick(row, "page_id", "pageId")),
		ContentType:  blocks.ResolveType(Text(pick(row, "content_type", "contentType", "type"))),
		DisplayOrder: Order(pick(row, "display_order", "displayOrder")),
		Content:      Text(row.Get("content")),
		Description:  Text(row.Get("description")),
		Title:        Text(row.Get("title")),
		HeadingLevel: strings.TrimSpace(Text(pick(row, "heading_level", "headingLevel"))),
		Active:       Active(row.Get("active")),
	}
}

// Template maps a templates row.
func Template(row gviz.Row) models.Template {
	return models.Template{
		ID:          ID(pick(row, "id")),
		Name:        Text(pick(row, "template_name", "templateName", "name")),
		Description: Text(row.Get("description")),
	}
}

// MenuItems maps every row of a main_menu table.
func MenuItems(t *gviz.Table) []models.MenuItem { return mapRows(t, MenuItem) }

// Pages maps every row of a pages table.
func Pages(t *gviz.Table) []models.Page { return mapRows(t, Page) }

// ContentBlocks maps every row of a content table.
func ContentBlocks(t *gviz.Table) []models.ContentBlock { return mapRows(t, ContentBlock) }

// Templates maps every row of a templates table.
func Templates(t *gviz.Table) []models.Template { return mapRows(t, Template) }

func mapRows[T any](t *gviz.Table, fn func(gviz.Row) T) []T {
	out := make([]T, 0, t.Len())
	if t == nil {
		return out
	}
	for _, row := range t.Rows {
		out = append(out, fn(row))
	}
	return out
}
