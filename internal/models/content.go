package models

// ContentType is the canonical kind of a content block.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentTitle     ContentType = "title"
	ContentImage     ContentType = "image"
	ContentYouTube   ContentType = "youtube"
	ContentLink      ContentType = "link"
	ContentList      ContentType = "list"
	ContentTable     ContentType = "table"
	ContentSeparator ContentType = "separator"
	ContentFile      ContentType = "file"
)

// ContentTypes lists every canonical kind in declaration order.
var ContentTypes = []ContentType{
	ContentText, ContentTitle, ContentImage, ContentYouTube, ContentLink,
	ContentList, ContentTable, ContentSeparator, ContentFile,
}

// Valid reports whether t is one of the canonical kinds.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MenuItem is a top-level navigation folder (main_menu sheet).
type MenuItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DisplayOrder     int    `json:"displayOrder"`
	Active           bool   `json:"active"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"shortDescription"`
}

// Page belongs to a MenuItem through FolderID (pages sheet).
type Page struct {
	ID              string `json:"id"`
	FolderID        string `json:"folderId"`
	Name            string `json:"name"`
	DisplayOrder    int    `json:"displayOrder"`
	Active          bool   `json:"active"`
	Slug            string `json:"slug"`
	MetaDescription string `json:"metaDescription"`
	SEOTitle        string `json:"seoTitle"`
}

// ContentBlock is one renderable block of a page (content sheet).
// Content holds the raw payload whose shape depends on ContentType.
type ContentBlock struct {
	ID           string      `json:"id"`
	PageID       string      `json:"pageId"`
	ContentType  ContentType `json:"contentType"`
	DisplayOrder int         `json:"displayOrder"`
	Content      string      `json:"content"`
	Description  string      `json:"description"`
	Title        string      `json:"title"`
	HeadingLevel string      `json:"headingLevel,omitempty"`
	Active       bool        `json:"active"`
}

// Setting is a flat key/value pair from the settings sheet.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Template is an opaque lookup row from the templates sheet.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
