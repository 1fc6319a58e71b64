// Package blocks resolves content-block kinds and extracts their payloads:
// heading levels, YouTube ids, image and file links, list and table bodies.
package blocks

import (
	"strings"

	"github.com/sheetsite/core/internal/models"
	"golang.org/x/text/unicode/norm"
)

// synonyms maps every accepted spelling to its canonical kind. Keys are
// lowercased and NFC-normalized.
var synonyms = map[string]models.ContentType{
	"text":      models.ContentText,
	"טקסט":      models.ContentText,
	"title":     models.ContentTitle,
	"כותרת":     models.ContentTitle,
	"image":     models.ContentImage,
	"תמונה":     models.ContentImage,
	"youtube":   models.ContentYouTube,
	"יוטיוב":    models.ContentYouTube,
	"link":      models.ContentLink,
	"קישור":     models.ContentLink,
	"list":      models.ContentList,
	"רשימה":     models.ContentList,
	"table":     models.ContentTable,
	"טבלה":      models.ContentTable,
	"separator": models.ContentSeparator,
	"מפריד":     models.ContentSeparator,
	"file":      models.ContentFile,
	"קובץ":      models.ContentFile,
}

// ResolveType maps a raw content_type cell to a canonical kind. Unknown,
// empty or missing kinds resolve to text so the block still renders.
func ResolveType(raw string) models.ContentType {
	key := strings.ToLower(norm.NFC.String(strings.TrimSpace(raw)))
	if t, ok := synonyms[key]; ok {
		return t
	}
	return models.ContentText
}

// Synonyms returns the accepted spellings of kind t.
func Synonyms(t models.ContentType) []string {
	var out []string
	for k, v := range synonyms {
		if v == t {
			out = append(out, k)
		}
	}
	return out
}
