package blocks

import (
	"regexp"
	"strings"
)

// DefaultLinkLabel captions a link block that has no description.
const DefaultLinkLabel = "לחץ כאן לפתיחת הקישור"

var youTubeURL = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|&v=)([^#&?]*).*`)

// YouTubeID extracts the 11-character video id from a watch, short, embed
// or v/ URL. Input that yields no such id is returned unchanged, so a bare
// id passes through.
func YouTubeID(raw string) string {
	s := strings.TrimSpace(raw)
	m := youTubeURL.FindStringSubmatch(s)
	if m != nil && len(m[2]) == 11 {
		return m[2]
	}
	return s
}

// EmbedURL is the iframe source for a YouTube block payload.
func EmbedURL(raw string) string {
	return "https://www.youtube.com/embed/" + YouTubeID(raw)
}

// ImageURL rewrites Unsplash photo-page links to the direct image CDN; any
// other URL is returned as-is.
func ImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "unsplash.com/photos/") || strings.Contains(s, "images.unsplash.com") {
		return s
	}
	id := s[strings.Index(s, "/photos/")+len("/photos/"):]
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return s
	}
	return "https://images.unsplash.com/photo-" + id + "?auto=format&fit=crop&w=1200&q=80"
}

// FileName is the last path segment of a file link, the whole input when it
// has no slash.
func FileName(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// LinkLabel is the visible caption of a link block.
func LinkLabel(description string) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}
	return DefaultLinkLabel
}

// ListItems splits a list payload into one item per non-empty line.
func ListItems(raw string) []string {
	var items []string
	for _, line := range splitLines(raw) {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// TableRows splits a table payload into rows of comma-separated cells, one
// row per non-empty line. The first row is the header.
func TableRows(raw string) [][]string {
	var rows [][]string
	for _, line := range splitLines(raw) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
