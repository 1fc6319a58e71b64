// Package snapshot holds the resolved content graph of one spreadsheet and
// the store that refreshes it. A Snapshot is immutable once published; all
// getters are pure lookups over it.
package snapshot

import (
	"slices"
	"strings"
	"time"

	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/normalize"
	"github.com/sheetsite/core/internal/modules/content/order"
	"github.com/sheetsite/core/internal/modules/content/settings"
)

// Snapshot is every sheet of a site, normalized, at one point in time.
type Snapshot struct {
	Version   string                `json:"version"`
	Source    string                `json:"source"`
	FetchedAt time.Time             `json:"fetchedAt"`
	Menu      []models.MenuItem     `json:"menu"`
	Pages     []models.Page         `json:"pages"`
	Content   []models.ContentBlock `json:"content"`
	Settings  map[string]string     `json:"settings"`
	Templates []models.Template     `json:"templates"`
	// Errors lists the fetch failures of the refresh that built the snapshot.
	Errors []string `json:"errors,omitempty"`

	placeholders map[string][]models.ContentBlock
}

// Empty returns a snapshot with no rows and the default settings.
func Empty() *Snapshot {
	return &Snapshot{Settings: settings.Defaults()}
}

// Loaded reports whether a refresh has completed. The Empty snapshot served
// before that carries no version.
func (s *Snapshot) Loaded() bool { return s.Version != "" }

// HasErrors reports whether any sheet failed to load.
func (s *Snapshot) HasErrors() bool { return len(s.Errors) > 0 }

// GetMenu returns the active menu folders in display order.
func (s *Snapshot) GetMenu() []models.MenuItem {
	return order.Menu(s.Menu)
}

// GetPages returns every page as read from the sheet.
func (s *Snapshot) GetPages() []models.Page {
	return slices.Clone(s.Pages)
}

// GetFolderPages returns the active pages of a folder in display order.
func (s *Snapshot) GetFolderPages(folderID string) []models.Page {
	return order.FolderPages(s.Pages, folderID)
}

// GetContentForPage returns the active blocks of a page in display order.
// A page without content whose id is on the placeholder allowlist gets the
// placeholder blocks instead; placeholder reports when that happened.
func (s *Snapshot) GetContentForPage(pageID string) (blocks []models.ContentBlock, placeholder bool) {
	blocks = order.PageContent(s.Content, pageID)
	if len(blocks) > 0 {
		return blocks, false
	}
	if fill, ok := s.placeholders[normalize.NormalizeID(pageID)]; ok {
		return slices.Clone(fill), true
	}
	return blocks, false
}

// GetSetting returns a setting. Well-known keys always resolve, to their
// default when the sheet does not set them.
func (s *Snapshot) GetSetting(key string) (string, bool) {
	v, ok := s.Settings[key]
	return v, ok
}

// Setting returns a setting or fallback when it is missing or empty.
func (s *Snapshot) Setting(key, fallback string) string {
	if v, ok := s.Settings[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// GetPageBySlug returns the first active page carrying slug.
func (s *Snapshot) GetPageBySlug(slug string) (models.Page, bool) {
	slug = strings.TrimSpace(slug)
	for _, p := range s.Pages {
		if p.Active && p.Slug == slug {
			return p, true
		}
	}
	return models.Page{}, false
}

// GetFolderPageBySlug looks the page up within one folder first and falls
// back to any folder, so slugs reused across folders resolve predictably.
func (s *Snapshot) GetFolderPageBySlug(folderID, slug string) (models.Page, bool) {
	slug = strings.TrimSpace(slug)
	for _, p := range s.Pages {
		if p.Active && p.Slug == slug && normalize.SameID(p.FolderID, folderID) {
			return p, true
		}
	}
	return s.GetPageBySlug(slug)
}

// GetFolderBySlug returns the active menu folder carrying slug.
func (s *Snapshot) GetFolderBySlug(slug string) (models.MenuItem, bool) {
	slug = strings.TrimSpace(slug)
	for _, m := range s.Menu {
		if m.Active && m.Slug == slug {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

// GetFolderByID returns the menu folder with id, active or not.
func (s *Snapshot) GetFolderByID(id string) (models.MenuItem, bool) {
	for _, m := range s.Menu {
		if normalize.SameID(m.ID, id) {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

// GetTemplateByID returns the template with id.
func (s *Snapshot) GetTemplateByID(id string) (models.Template, bool) {
	for _, t := range s.Templates {
		if normalize.SameID(t.ID, id) {
			return t, true
		}
	}
	return models.Template{}, false
}
