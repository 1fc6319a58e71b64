package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/sheets/fetcher"
	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu     sync.Mutex
	tables map[string]*gviz.Table
	fail   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, sheet, _ string) (*gviz.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sheet)
	if err := f.fail[sheet]; err != nil {
		return &gviz.Table{}, &fetcher.FetchError{Sheet: sheet, Kind: fetcher.ErrTransport, Err: err}
	}
	if t, ok := f.tables[sheet]; ok {
		return t, nil
	}
	return &gviz.Table{}, nil
}

func (f *fakeFetcher) Resolve(override string) source.Locator {
	if override != "" {
		loc, _ := source.ParseLocator(override)
		return loc
	}
	return source.Locator{SheetID: "default-sheet-id-000000"}
}

type fakeShared struct {
	mu        sync.Mutex
	values    map[string]string
	published []string
}

func newFakeShared() *fakeShared { return &fakeShared{values: map[string]string{}} }

func (f *fakeShared) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeShared) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.(string)
	return nil
}

func (f *fakeShared) Publish(_ context.Context, _ string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, message.(string))
	return nil
}

func siteTables() map[string]*gviz.Table {
	s := gviz.String
	n := gviz.Number
	return map[string]*gviz.Table{
		fetcher.SheetMenu: gviz.FromMatrix(
			[]string{"id", "folder_name", "display_order", "active", "slug"},
			[][]gviz.Value{
				{n(2), s("Blog"), n(2), s("yes"), s("blog")},
				{n(1), s("About"), n(1), gviz.Blank, s("about")},
				{n(3), s("Hidden"), n(0), s("no"), s("hidden")},
			}),
		fetcher.SheetPages: gviz.FromMatrix(
			[]string{"id", "folder_id", "page_name", "display_order", "active", "slug", "seo_title"},
			[][]gviz.Value{
				{n(10), n(1), s("Team"), n(2), s("yes"), s("team"), s("Our team")},
				{n(11), s("1"), s("History"), n(1), s("כן"), s("history"), gviz.Blank},
				{n(12), n(2), s("Post"), n(1), s("yes"), s("post"), gviz.Blank},
			}),
		fetcher.SheetContent: gviz.FromMatrix(
			[]string{"id", "page_id", "content_type", "display_order", "content", "title"},
			[][]gviz.Value{
				{n(1), n(10), s("כותרת"), s("1"), gviz.Blank, s("Team")},
				{n(2), s("10"), s("text"), s("2"), s("hello"), gviz.Blank},
				{n(3), n(11), s("image"), s("1"), s("https://unsplash.com/photos/x"), gviz.Blank},
			}),
		fetcher.SheetSettings: gviz.FromMatrix(
			[]string{"key", "value"},
			[][]gviz.Value{{s("siteName"), s("Dogs")}}),
		fetcher.SheetTemplates: gviz.FromMatrix(
			[]string{"id", "template_name"},
			[][]gviz.Value{{n(1), s("landing")}}),
	}
}

func TestStoreStartsEmptyWithDefaults(t *testing.T) {
	st := NewStore(&fakeFetcher{}, Options{})
	cur := st.Current()
	require.NotNil(t, cur)
	assert.False(t, cur.Loaded())
	assert.Empty(t, cur.GetMenu())
	v, ok := cur.GetSetting("siteName")
	assert.True(t, ok)
	assert.NotEmpty(t, v)
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	f := &fakeFetcher{tables: siteTables()}
	st := NewStore(f, Options{})

	snap, err := st.Refresh(context.Background(), "")
	require.NoError(t, err)
	assert.Same(t, snap, st.Current())
	assert.NotEmpty(t, snap.Version)
	assert.True(t, snap.Loaded())
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/default-sheet-id-000000/edit", snap.Source)
	assert.ElementsMatch(t, fetcher.Sheets, f.calls)

	menu := snap.GetMenu()
	require.Len(t, menu, 2)
	assert.Equal(t, "About", menu[0].Name)
	assert.Equal(t, "Blog", menu[1].Name)

	pages := snap.GetFolderPages("1")
	require.Len(t, pages, 2)
	assert.Equal(t, "History", pages[0].Name)
	assert.Equal(t, "Team", pages[1].Name)
	assert.Len(t, snap.GetPages(), 3)

	blocks, placeholder := snap.GetContentForPage("10")
	assert.False(t, placeholder)
	require.Len(t, blocks, 2)
	assert.Equal(t, models.ContentTitle, blocks[0].ContentType)

	name, _ := snap.GetSetting("siteName")
	assert.Equal(t, "Dogs", name)
	logo, ok := snap.GetSetting("logo")
	assert.True(t, ok)
	assert.NotEmpty(t, logo)

	folder, ok := snap.GetFolderBySlug("about")
	require.True(t, ok)
	assert.Equal(t, "1", folder.ID)
	_, ok = snap.GetFolderBySlug("hidden")
	assert.False(t, ok)

	page, ok := snap.GetPageBySlug("team")
	require.True(t, ok)
	assert.Equal(t, "10", page.ID)

	tpl, ok := snap.GetTemplateByID("1")
	require.True(t, ok)
	assert.Equal(t, "landing", tpl.Name)
	_, ok = snap.GetTemplateByID("2")
	assert.False(t, ok)
}

func TestRefreshCombinesErrorsAndStillPublishes(t *testing.T) {
	tables := siteTables()
	f := &fakeFetcher{tables: tables, fail: map[string]error{
		fetcher.SheetPages:   errors.New("status 500"),
		fetcher.SheetContent: errors.New("timeout"),
	}}
	st := NewStore(f, Options{})

	snap, err := st.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, fetcher.ErrTransport)
	assert.Same(t, snap, st.Current())
	assert.True(t, snap.HasErrors())
	assert.Len(t, snap.Errors, 2)
	assert.Empty(t, snap.Pages)
	assert.Len(t, snap.GetMenu(), 2)
}

func TestRefreshWithOverrideRecordsSource(t *testing.T) {
	st := NewStore(&fakeFetcher{tables: siteTables()}, Options{})
	snap, err := st.Refresh(context.Background(), "https://docs.google.com/spreadsheets/d/other_sheet_id/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/other_sheet_id/edit", snap.Source)
}

func TestCancelledRefreshKeepsCurrentSnapshot(t *testing.T) {
	shared := newFakeShared()
	st := NewStore(&fakeFetcher{tables: siteTables()}, Options{Shared: shared})
	good, err := st.Refresh(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, good.Menu)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := st.Refresh(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, good, got)
	assert.Same(t, good, st.Current())
	assert.Len(t, shared.published, 1)
}

func TestSupersededRefreshIsDiscarded(t *testing.T) {
	st := NewStore(&fakeFetcher{tables: siteTables()}, Options{})
	stale := st.seq.Add(1)
	fresh, err := st.Refresh(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, st.publish(stale, Empty()))
	assert.Same(t, fresh, st.Current())
}

func TestPlaceholderAllowlist(t *testing.T) {
	fill := []models.ContentBlock{{ID: "p1", ContentType: models.ContentText, Content: "coming soon", Active: true}}
	st := NewStore(&fakeFetcher{tables: siteTables()}, Options{Placeholders: map[string][]models.ContentBlock{"12": fill}})
	snap, err := st.Refresh(context.Background(), "")
	require.NoError(t, err)

	blocks, placeholder := snap.GetContentForPage("12")
	assert.True(t, placeholder)
	assert.Equal(t, fill, blocks)

	blocks, placeholder = snap.GetContentForPage("99")
	assert.False(t, placeholder)
	assert.Empty(t, blocks)
}

func TestSharedSnapshotRoundTrip(t *testing.T) {
	shared := newFakeShared()
	a := NewStore(&fakeFetcher{tables: siteTables()}, Options{Shared: shared})
	b := NewStore(&fakeFetcher{}, Options{Shared: shared})

	var published []string
	b.OnPublish(func(s *Snapshot) { published = append(published, s.Version) })

	snap, err := a.Refresh(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []string{snap.Version}, shared.published)

	versions := make(chan string, 1)
	versions <- snap.Version
	close(versions)
	b.Follow(context.Background(), versions)

	assert.Equal(t, snap.Version, b.Current().Version)
	assert.Len(t, b.Current().GetMenu(), 2)
	assert.Equal(t, []string{snap.Version}, published)

	assert.ErrorIs(t, b.LoadShared(context.Background(), "other"), ErrNoShared)
}

func TestLoadSharedWithoutBackend(t *testing.T) {
	st := NewStore(&fakeFetcher{}, Options{})
	assert.ErrorIs(t, st.LoadShared(context.Background(), ""), ErrNoShared)
}

func TestFolderPageBySlugPrefersRequestedFolder(t *testing.T) {
	snap := &Snapshot{Pages: []models.Page{
		{ID: "1", FolderID: "2", Slug: "team", Active: true},
		{ID: "2", FolderID: "1", Slug: "team", Active: true},
		{ID: "3", FolderID: "2", Slug: "contact", Active: true},
	}}

	p, ok := snap.GetFolderPageBySlug("1.0", "team")
	require.True(t, ok)
	assert.Equal(t, "2", p.ID)

	p, ok = snap.GetFolderPageBySlug("1", "contact")
	require.True(t, ok)
	assert.Equal(t, "3", p.ID)

	_, ok = snap.GetFolderPageBySlug("1", "missing")
	assert.False(t, ok)
}
