package blocks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sheetsite/core/internal/models"
)

// DefaultHeadingLevel applies when a title block names no level.
const DefaultHeadingLevel = 2

// Heading is the resolved level and visible text of a title block.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Tag returns the HTML element name, "h1" through "h6".
func (h Heading) Tag() string {
	return "h" + strconv.Itoa(h.Level)
}

var (
	explicitLevel = regexp.MustCompile(`(?i)^h?([1-6])$`)
	legacyPrefix  = regexp.MustCompile(`(?is)^h([1-6]):\s*(.+)$`)
)

// levelSource is one way of finding a heading level on a block. Sources
// are tried in order and the first that reports ok wins.
type levelSource func(b models.ContentBlock) (int, bool)

var levelSources = []levelSource{
	fromLevelField,
	fromLegacyPrefix,
}

// ParseHeading resolves the level and text of a title block. An explicit
// heading_level column wins over an "hN:" prefix; otherwise the level is 2.
// The prefix is read from the title, or from the content when the title is
// empty, and is always stripped from the returned text.
func ParseHeading(b models.ContentBlock) Heading {
	h := Heading{Level: DefaultHeadingLevel, Text: headingText(b)}
	if m := legacyPrefix.FindStringSubmatch(h.Text); m != nil {
		h.Text = strings.TrimSpace(m[2])
	}
	for _, src := range levelSources {
		if level, ok := src(b); ok {
			h.Level = level
			break
		}
	}
	return h
}

func fromLevelField(b models.ContentBlock) (int, bool) {
	m := explicitLevel.FindStringSubmatch(strings.TrimSpace(b.HeadingLevel))
	if m == nil {
		return 0, false
	}
	level, _ := strconv.Atoi(m[1])
	return level, true
}

func fromLegacyPrefix(b models.ContentBlock) (int, bool) {
	m := legacyPrefix.FindStringSubmatch(headingText(b))
	if m == nil {
		return 0, false
	}
	level, _ := strconv.Atoi(m[1])
	return level, true
}

// headingText prefers the title column and falls back to the content.
func headingText(b models.ContentBlock) string {
	if t := strings.TrimSpace(b.Title); t != "" {
		return t
	}
	return strings.TrimSpace(b.Content)
}
