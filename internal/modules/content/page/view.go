// Package page serves the read API over the current snapshot and assembles
// the full view of one page: SEO fields, breadcrumbs, style settings and
// render-ready blocks.
package page

import (
	"errors"
	"strings"

	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/blocks"
	"github.com/sheetsite/core/internal/modules/content/settings"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrPageNotFound   = errors.New("page not found")
)

// Block is a content block with its payload decoded for its kind.
type Block struct {
	models.ContentBlock
	Heading   *blocks.Heading `json:"heading,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	EmbedURL  string          `json:"embedUrl,omitempty"`
	VideoID   string          `json:"videoId,omitempty"`
	LinkLabel string          `json:"linkLabel,omitempty"`
	FileName  string          `json:"fileName,omitempty"`
	Items     []string        `json:"items,omitempty"`
	Rows      [][]string      `json:"rows,omitempty"`
}

// Render decodes the payload of b according to its kind.
func Render(b models.ContentBlock) Block {
	out := Block{ContentBlock: b}
	switch b.ContentType {
	case models.ContentTitle:
		h := blocks.ParseHeading(b)
		out.Heading = &h
	case models.ContentImage:
		out.ImageURL = blocks.ImageURL(b.Content)
	case models.ContentYouTube:
		out.VideoID = blocks.YouTubeID(b.Content)
		out.EmbedURL = blocks.EmbedURL(b.Content)
	case models.ContentLink:
		out.LinkLabel = blocks.LinkLabel(b.Description)
	case models.ContentFile:
		out.FileName = blocks.FileName(b.Content)
	case models.ContentList:
		out.Items = blocks.ListItems(b.Content)
	case models.ContentTable:
		out.Rows = blocks.TableRows(b.Content)
	}
	return out
}

// RenderAll renders every block in order.
func RenderAll(bs []models.ContentBlock) []Block {
	out := make([]Block, 0, len(bs))
	for _, b := range bs {
		out = append(out, Render(b))
	}
	return out
}

// SuppressTitle reports whether the page heading would repeat the first
// block: a title block whose text, trimmed and lowercased, equals the page
// name exactly.
func SuppressTitle(p models.Page, bs []models.ContentBlock) bool {
	if len(bs) == 0 || bs[0].ContentType != models.ContentTitle {
		return false
	}
	text := blocks.ParseHeading(bs[0]).Text
	return strings.ToLower(strings.TrimSpace(text)) == strings.ToLower(strings.TrimSpace(p.Name))
}

// Breadcrumb is one step of the site > folder > page trail.
type Breadcrumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// SEO carries the document title and meta description of a page.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Style is the presentation settings a page renders with.
type Style struct {
	PrimaryColor      string `json:"primaryColor"`
	HeadingColor      string `json:"headingColor"`
	ContentSpacing    string `json:"contentSpacing"`
	PageWidth         string `json:"pageWidth"`
	PageBackground    string `json:"pageBackground"`
	CardBackground    string `json:"cardBackground"`
	CardBorderRadius  string `json:"cardBorderRadius"`
	CardPadding       string `json:"cardPadding"`
	CardMargin        string `json:"cardMargin"`
	CardStyle         string `json:"cardStyle"`
	BoxBackground     string `json:"boxBackground"`
	QuestionColor     string `json:"questionColor"`
	ContentLineHeight string `json:"contentLineHeight"`
}

// StyleOf reads the style settings of a snapshot, each falling back to its
// built-in default.
func StyleOf(s *snapshot.Snapshot) Style {
	get := func(key string) string { return s.Setting(key, settings.Default(key)) }
	return Style{
		PrimaryColor:      get(settings.KeyPrimaryColor),
		HeadingColor:      get(settings.KeyHeadingColor),
		ContentSpacing:    get(settings.KeyContentSpacing),
		PageWidth:         get(settings.KeyPageWidth),
		PageBackground:    get(settings.KeyPageBackground),
		CardBackground:    get(settings.KeyCardBackground),
		CardBorderRadius:  get(settings.KeyCardBorderRadius),
		CardPadding:       get(settings.KeyCardPadding),
		CardMargin:        get(settings.KeyCardMargin),
		CardStyle:         get(settings.KeyCardStyle),
		BoxBackground:     get(settings.KeyBoxBackground),
		QuestionColor:     get(settings.KeyQuestionColor),
		ContentLineHeight: get(settings.KeyContentLineHeight),
	}
}

// View is everything needed to render one page.
type View struct {
	Folder      models.MenuItem `json:"folder"`
	Page        models.Page     `json:"page"`
	SEO         SEO             `json:"seo"`
	Breadcrumbs []Breadcrumb    `json:"breadcrumbs"`
	// ShowTitle is false when the first block already repeats the page name.
	ShowTitle   bool    `json:"showTitle"`
	Blocks      []Block `json:"blocks"`
	Empty       bool    `json:"empty"`
	Placeholder bool    `json:"placeholder"`
	Style       Style   `json:"style"`
}

// Build assembles the view of the page at /folderSlug/pageSlug.
func Build(s *snapshot.Snapshot, folderSlug, pageSlug string) (View, error) {
	folder, ok := s.GetFolderBySlug(folderSlug)
	if !ok {
		return View{}, ErrFolderNotFound
	}
	p, ok := s.GetFolderPageBySlug(folder.ID, pageSlug)
	if !ok {
		return View{}, ErrPageNotFound
	}
	content, placeholder := s.GetContentForPage(p.ID)

	title := p.SEOTitle
	if strings.TrimSpace(title) == "" {
		title = p.Name
	}
	siteName := s.Setting(settings.KeySiteName, settings.Default(settings.KeySiteName))

	return View{
		Folder: folder,
		Page:   p,
		SEO:    SEO{Title: title, Description: p.MetaDescription},
		Breadcrumbs: []Breadcrumb{
			{Label: siteName, Path: "/"},
			{Label: folder.Name, Path: "/" + folder.Slug},
			{Label: p.Name, Path: "/" + folder.Slug + "/" + p.Slug},
		},
		ShowTitle:   !SuppressTitle(p, content),
		Blocks:      RenderAll(content),
		Empty:       len(content) == 0,
		Placeholder: placeholder,
		Style:       StyleOf(s),
	}, nil
}
