// Package fetcher turns a sheet name into a labeled row table. It hides the
// upstream source and the degraded results a failed transport produces.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"go.uber.org/zap"
)

// Logical sheet names of a site spreadsheet.
const (
	SheetMenu      = "main_menu"
	SheetPages     = "pages"
	SheetContent   = "content"
	SheetSettings  = "settings"
	SheetTemplates = "templates"
)

// Sheets lists every logical sheet in fetch order.
var Sheets = []string{SheetMenu, SheetPages, SheetContent, SheetSettings, SheetTemplates}

var (
	// ErrTransport classifies failures reaching the upstream (network, non-2xx).
	ErrTransport = errors.New("transport error")
	// ErrPayload classifies upstream bodies that are not a readable table.
	ErrPayload = errors.New("malformed payload")
)

// FetchError reports why one sheet could not be read.
type FetchError struct {
	Sheet string
	Kind  error
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Sheet, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Fetcher reads sheets from a Source against a default spreadsheet.
type Fetcher struct {
	src        source.Source
	defaultLoc source.Locator
	logger     *zap.Logger
}

func New(src source.Source, defaultLoc source.Locator, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{src: src, defaultLoc: defaultLoc, logger: logger}
}

// Source returns the upstream the fetcher reads from.
func (f *Fetcher) Source() source.Source { return f.src }

// DefaultLocator returns the spreadsheet used when no override is given.
func (f *Fetcher) DefaultLocator() source.Locator { return f.defaultLoc }

// Resolve picks the spreadsheet for an optional override locator. An
// unparsable override falls back to the default.
func (f *Fetcher) Resolve(override string) source.Locator {
	if strings.TrimSpace(override) == "" {
		return f.defaultLoc
	}
	loc, err := source.ParseLocator(override)
	if err != nil {
		f.logger.Warn("invalid custom sheet url, using default", zap.String("url", override), zap.Error(err))
		return f.defaultLoc
	}
	return loc
}

// Fetch reads one sheet. On failure it returns an empty table and a
// *FetchError, except for the settings sheet, which degrades to a minimal
// built-in configuration and reports no error.
func (f *Fetcher) Fetch(ctx context.Context, sheet, override string) (*gviz.Table, error) {
	loc := f.Resolve(override)
	table, err := f.src.Rows(ctx, loc, sheet)
	if err == nil && table != nil {
		return table, nil
	}
	if err == nil {
		err = errors.New("source returned no table")
	}

	kind := ErrTransport
	if errors.Is(err, gviz.ErrMalformed) {
		kind = ErrPayload
	}
	f.logger.Warn("sheet fetch failed",
		zap.String("sheet", sheet),
		zap.String("source", f.src.Name()),
		zap.String("spreadsheet", loc.String()),
		zap.Error(err),
	)

	if sheet == SheetSettings {
		f.logger.Warn("using built-in default settings")
		return DefaultSettingsTable(), nil
	}
	return &gviz.Table{}, &FetchError{Sheet: sheet, Kind: kind, Err: err}
}

// defaultSettings is the configuration served when the settings sheet is
// unreachable.
var defaultSettings = [][2]string{
	{"siteName", "אתר מבוסס גוגלשיטס"},
	{"logo", "https://via.placeholder.com/40x40"},
	{"footerText", "© כל הזכויות שמורות"},
	{"primaryColor", "#7e3f98"},
	{"language", "he"},
	{"rtl", "true"},
}

// DefaultSettingsTable returns the built-in settings as a key/value table.
func DefaultSettingsTable() *gviz.Table {
	cells := make([][]gviz.Value, 0, len(defaultSettings))
	for _, kv := range defaultSettings {
		cells = append(cells, []gviz.Value{gviz.String(kv[0]), gviz.String(kv[1])})
	}
	return gviz.FromMatrix([]string{"key", "value"}, cells)
}
