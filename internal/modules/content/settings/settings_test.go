package settings

import (
	"testing"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/stretchr/testify/assert"
)

func kv(rows ...[2]string) [][]gviz.Value {
	out := make([][]gviz.Value, 0, len(rows))
	for _, r := range rows {
		out = append(out, []gviz.Value{gviz.String(r[0]), gviz.String(r[1])})
	}
	return out
}

func TestResolveStandardShape(t *testing.T) {
	table := gviz.FromMatrix([]string{"key", "value"}, kv(
		[2]string{"siteName", "My Site"},
		[2]string{"footerText", "Copyright 2023"},
		[2]string{"address", "Tel Aviv"},
	))
	got := Resolve(table)
	assert.Equal(t, "My Site", got[KeySiteName])
	assert.Equal(t, "Copyright 2023", got[KeyFooterText])
	assert.Equal(t, "Tel Aviv", got["address"])
	assert.Equal(t, Default(KeyLogo), got[KeyLogo])
}

func TestResolveLastAssignmentWins(t *testing.T) {
	table := gviz.FromMatrix([]string{"key", "value"}, kv(
		[2]string{"siteName", "first"},
		[2]string{"siteName", "second"},
	))
	assert.Equal(t, "second", Resolve(table)[KeySiteName])
}

func TestResolvePackedLabels(t *testing.T) {
	table := gviz.FromMatrix(
		[]string{"key siteName logo primaryColor", "value Dogs https://x/logo.png #112233"},
		kv([2]string{"address", "Haifa"}),
	)
	got := Resolve(table)
	assert.Equal(t, "Dogs", got[KeySiteName])
	assert.Equal(t, "https://x/logo.png", got[KeyLogo])
	assert.Equal(t, "#112233", got[KeyPrimaryColor])
	assert.Equal(t, "Haifa", got["address"])
	assert.Equal(t, Default(KeyFooterText), got[KeyFooterText])
}

func TestResolveHeaderlessSheet(t *testing.T) {
	table := gviz.FromMatrix([]string{"siteName", "My Dog Site"}, kv([2]string{"logo", "/l.png"}))
	got := Resolve(table)
	assert.Equal(t, "My Dog Site", got[KeySiteName])
	assert.Equal(t, "/l.png", got[KeyLogo])
}

func TestResolvePackedCells(t *testing.T) {
	table := gviz.FromMatrix([]string{"key", "value"}, kv(
		[2]string{"siteName footerText", "Cats ©2024"},
		[2]string{"language", "en"},
	))
	got := Resolve(table)
	assert.Equal(t, "Cats", got[KeySiteName])
	assert.Equal(t, "©2024", got[KeyFooterText])
	assert.Equal(t, "en", got[KeyLanguage])
}

func TestResolvePackedCellsIgnoresUnknownKeyLists(t *testing.T) {
	table := gviz.FromMatrix([]string{"key", "value"}, kv([2]string{"foo bar", "1 2"}))
	got := Resolve(table)
	assert.NotContains(t, got, "foo")
	assert.NotContains(t, got, "foo bar")
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	for _, table := range []*gviz.Table{nil, {}, gviz.FromMatrix([]string{"a"}, nil)} {
		got := Resolve(table)
		assert.Equal(t, Defaults(), got)
		for _, k := range []string{KeySiteName, KeyLogo, KeyFooterText} {
			assert.NotEmpty(t, got[k])
		}
	}
}

func TestDefaultsIsACopy(t *testing.T) {
	d := Defaults()
	d[KeySiteName] = "changed"
	assert.NotEqual(t, "changed", Default(KeySiteName))
}

func TestZip(t *testing.T) {
	assert.Equal(t, []pair{{"a", "1"}, {"b", "2 3"}}, zip([]string{"a", "b"}, []string{"1", "2", "3"}))
	assert.Equal(t, []pair{{"a", "1"}}, zip([]string{"a", "b"}, []string{"1"}))
}

func TestResolveBlankValueKeepsDefault(t *testing.T) {
	table := gviz.FromMatrix([]string{"key", "value"}, kv(
		[2]string{"logo", ""},
		[2]string{"siteName", "  "},
		[2]string{"footerText", "Footer"},
	))
	got := Resolve(table)
	assert.Equal(t, Default(KeyLogo), got[KeyLogo])
	assert.Equal(t, Default(KeySiteName), got[KeySiteName])
	assert.Equal(t, "Footer", got[KeyFooterText])

	stray := gviz.FromMatrix([]string{"siteName", "My Dog Site"}, kv([2]string{"logo", ""}))
	assert.Equal(t, Default(KeyLogo), Resolve(stray)[KeyLogo])
}
