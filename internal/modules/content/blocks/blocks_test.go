package blocks

import (
	"testing"

	"github.com/sheetsite/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveType(t *testing.T) {
	cases := map[string]models.ContentType{
		"title":     models.ContentTitle,
		"  TITLE ":  models.ContentTitle,
		"כותרת":     models.ContentTitle,
		"טקסט":      models.ContentText,
		"תמונה":     models.ContentImage,
		"YouTube":   models.ContentYouTube,
		"יוטיוב":    models.ContentYouTube,
		"קישור":     models.ContentLink,
		"רשימה":     models.ContentList,
		"טבלה":      models.ContentTable,
		"מפריד":     models.ContentSeparator,
		"קובץ":      models.ContentFile,
		"":          models.ContentText,
		"carousel":  models.ContentText,
		"separator": models.ContentSeparator,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ResolveType(raw), "raw=%q", raw)
	}
}

func TestResolveTypeBilingualPairs(t *testing.T) {
	for _, kind := range models.ContentTypes {
		spellings := Synonyms(kind)
		assert.Len(t, spellings, 2, "kind %s", kind)
		for _, s := range spellings {
			assert.Equal(t, kind, ResolveType(s))
		}
	}
}

func TestParseHeading(t *testing.T) {
	cases := []struct {
		name  string
		block models.ContentBlock
		want  Heading
	}{
		{"legacy prefix in title", models.ContentBlock{Title: "h3: Example"}, Heading{3, "Example"}},
		{"legacy prefix upper case", models.ContentBlock{Title: "H5:Deep"}, Heading{5, "Deep"}},
		{"legacy prefix in content", models.ContentBlock{Content: "h1: Welcome"}, Heading{1, "Welcome"}},
		{"title prefix beats content prefix", models.ContentBlock{Title: "h4: A", Content: "h1: B"}, Heading{4, "A"}},
		{"explicit beats prefix", models.ContentBlock{Title: "h4: X", HeadingLevel: "h1"}, Heading{1, "X"}},
		{"content ignored when title set", models.ContentBlock{Title: "Plain", Content: "h1: B"}, Heading{2, "Plain"}},
		{"explicit bare digit", models.ContentBlock{Title: "About", HeadingLevel: "3"}, Heading{3, "About"}},
		{"explicit upper case", models.ContentBlock{Title: "About", HeadingLevel: "H6"}, Heading{6, "About"}},
		{"explicit out of range ignored", models.ContentBlock{Title: "h2: About", HeadingLevel: "h9"}, Heading{2, "About"}},
		{"default level from title", models.ContentBlock{Title: " Plain "}, Heading{2, "Plain"}},
		{"default level from content", models.ContentBlock{Content: "Body"}, Heading{2, "Body"}},
		{"seven is not a level", models.ContentBlock{Title: "h7: Nope"}, Heading{2, "h7: Nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseHeading(tc.block))
		})
	}
	assert.Equal(t, "h3", Heading{Level: 3}.Tag())
}

func TestYouTubeID(t *testing.T) {
	assert.Equal(t, "dQw4w9WgXcQ", YouTubeID("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "dQw4w9WgXcQ", YouTubeID("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, "dQw4w9WgXcQ", YouTubeID("https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ"))
	assert.Equal(t, "dQw4w9WgXcQ", YouTubeID("https://www.youtube.com/embed/dQw4w9WgXcQ?start=3"))
	assert.Equal(t, "dQw4w9WgXcQ", YouTubeID("https://www.youtube.com/v/dQw4w9WgXcQ"))
	assert.Equal(t, "not a video", YouTubeID("not a video"))
	assert.Equal(t, "https://youtu.be/short", YouTubeID("https://youtu.be/short"))
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL("https://youtu.be/dQw4w9WgXcQ"))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t,
		"https://images.unsplash.com/photo-abc123?auto=format&fit=crop&w=1200&q=80",
		ImageURL("https://unsplash.com/photos/abc123?utm_source=x"))
	assert.Equal(t,
		"https://images.unsplash.com/photo-xyz?auto=format&fit=crop&w=1200&q=80",
		ImageURL("https://unsplash.com/photos/xyz#top"))

	direct := "https://images.unsplash.com/photo-1?w=400"
	assert.Equal(t, direct, ImageURL(direct))
	assert.Equal(t, "https://example.com/a.png", ImageURL("https://example.com/a.png"))
}

func TestFileNameAndLinkLabel(t *testing.T) {
	assert.Equal(t, "report.pdf", FileName("https://example.com/files/report.pdf"))
	assert.Equal(t, "plain.txt", FileName("plain.txt"))
	assert.Equal(t, "", FileName("https://example.com/"))

	assert.Equal(t, "Docs", LinkLabel(" Docs "))
	assert.Equal(t, DefaultLinkLabel, LinkLabel(""))
}

func TestListItemsAndTableRows(t *testing.T) {
	assert.Equal(t, []string{"one", "two", "three"}, ListItems(" one\r\ntwo \n\n three"))
	assert.Nil(t, ListItems(""))

	assert.Equal(t, [][]string{{"name", "age"}, {"dan", "30"}}, TableRows("name, age\n\ndan,30\n"))
}
