package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLocator is returned for a data-source URL that names no spreadsheet.
	ErrInvalidLocator = errors.New("source: invalid spreadsheet locator")
	// ErrSheetName is returned for sheet names outside [a-zA-Z0-9_-].
	ErrSheetName = errors.New("source: invalid sheet name")
)

var (
	sheetIDPattern   = regexp.MustCompile(`https://docs\.google\.com/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
	sheetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Locator identifies one spreadsheet: a Google spreadsheet id or a local
// workbook path.
type Locator struct {
	SheetID string `json:"sheetId,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ParseLocator accepts a spreadsheet URL (any docs.google.com/spreadsheets/d/<id>
// form), a bare spreadsheet id, or a workbook path (file:// or *.xlsx).
func ParseLocator(raw string) (Locator, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Locator{}, fmt.Errorf("%w: empty", ErrInvalidLocator)
	}
	if m := sheetIDPattern.FindStringSubmatch(s); m != nil {
		return Locator{SheetID: m[1]}, nil
	}
	if strings.HasPrefix(s, "file://") {
		return Locator{Path: filepath.Clean(strings.TrimPrefix(s, "file://"))}, nil
	}
	if strings.EqualFold(filepath.Ext(s), ".xlsx") {
		return Locator{Path: filepath.Clean(s)}, nil
	}
	if bareIDPattern.MatchString(s) {
		return Locator{SheetID: s}, nil
	}
	return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, s)
}

// IsZero reports whether the locator names nothing.
func (l Locator) IsZero() bool { return l.SheetID == "" && l.Path == "" }

// URL returns the canonical form that is persisted and shown to editors.
func (l Locator) URL() string {
	switch {
	case l.SheetID != "":
		return "https://docs.google.com/spreadsheets/d/" + l.SheetID + "/edit"
	case l.Path != "":
		return "file://" + l.Path
	default:
		return ""
	}
}

func (l Locator) String() string {
	if l.SheetID != "" {
		return l.SheetID
	}
	return l.Path
}

// ValidSheetName reports whether name is safe to pass upstream.
func ValidSheetName(name string) bool {
	return sheetNamePattern.MatchString(name)
}
