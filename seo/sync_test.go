package seo

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blankPage = `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body></body></html>`

func newDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func outer(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	s, err := goquery.OuterHtml(doc.Selection)
	require.NoError(t, err)
	return s
}

func fullDescriptor() Descriptor {
	return Descriptor{
		Title:       "About - Jane",
		Description: "Who I am",
		Keywords:    "go, web",
		Author:      "Jane",
		URL:         "https://jane.dev/#about",
		Image:       "https://jane.dev/og-image.jpg",
	}
}

func TestSyncWritesEveryTrackedTag(t *testing.T) {
	doc := newDoc(t, blankPage)
	Sync(doc, fullDescriptor())

	assert.Equal(t, "About - Jane", Title(doc))

	expected := map[[2]string]string{
		{"name", "description"}:         "Who I am",
		{"name", "keywords"}:            "go, web",
		{"name", "author"}:              "Jane",
		{"property", "og:type"}:         "website",
		{"property", "og:url"}:          "https://jane.dev/#about",
		{"property", "og:title"}:        "About - Jane",
		{"property", "og:description"}:  "Who I am",
		{"property", "og:image"}:        "https://jane.dev/og-image.jpg",
		{"name", "twitter:card"}:        "summary_large_image",
		{"name", "twitter:url"}:         "https://jane.dev/#about",
		{"name", "twitter:title"}:       "About - Jane",
		{"name", "twitter:description"}: "Who I am",
		{"name", "twitter:image"}:       "https://jane.dev/og-image.jpg",
	}
	for k, want := range expected {
		got, ok := Meta(doc, k[0], k[1])
		assert.True(t, ok, "meta[%s=%s] missing", k[0], k[1])
		assert.Equal(t, want, got, "meta[%s=%s]", k[0], k[1])
	}

	href, ok := Canonical(doc)
	require.True(t, ok)
	assert.Equal(t, "https://jane.dev/#about", href)
}

func TestSyncIsIdempotent(t *testing.T) {
	doc := newDoc(t, blankPage)
	d := Descriptor{Title: "X", Description: "Y", URL: "https://a/"}

	Sync(doc, d)
	once := outer(t, doc)
	Sync(doc, d)
	twice := outer(t, doc)

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, doc.Find(`meta[name="description"]`).Length())
	assert.Equal(t, 1, doc.Find(`link[rel="canonical"]`).Length())
	assert.Equal(t, 1, doc.Find("title").Length())
}

func TestSyncReusesExistingTags(t *testing.T) {
	doc := newDoc(t, `<html><head><title>Old</title><meta name="description" content="old"><link rel="canonical" href="https://old/"></head><body></body></html>`)
	Sync(doc, fullDescriptor())

	assert.Equal(t, 1, doc.Find("title").Length())
	assert.Equal(t, 1, doc.Find(`meta[name="description"]`).Length())
	assert.Equal(t, 1, doc.Find(`link[rel="canonical"]`).Length())
	got, _ := Meta(doc, "name", "description")
	assert.Equal(t, "Who I am", got)
}

func TestSyncReplacesPreviousDescriptor(t *testing.T) {
	doc := newDoc(t, blankPage)
	a := fullDescriptor()
	b := Descriptor{
		Title:       "Blog - Jane",
		Description: "Notes",
		Keywords:    "notes",
		Author:      "J.",
		URL:         "https://jane.dev/#blog",
		Image:       "https://jane.dev/blog.jpg",
		Type:        "article",
	}

	Sync(doc, a)
	Sync(doc, b)

	for _, tag := range Tags(b) {
		got, ok := Meta(doc, tag.Attr, tag.Key)
		require.True(t, ok)
		assert.Equal(t, tag.Content, got, "%s=%s", tag.Attr, tag.Key)
	}
	assert.Equal(t, "Blog - Jane", Title(doc))
	href, _ := Canonical(doc)
	assert.Equal(t, "https://jane.dev/#blog", href)
	assert.NotContains(t, outer(t, doc), "Who I am")
}

// Empty URL or Image leaves the previous values in place rather than clearing them.
func TestSyncKeepsStaleConditionalTags(t *testing.T) {
	doc := newDoc(t, blankPage)
	Sync(doc, fullDescriptor())
	Sync(doc, Descriptor{Title: "Bare", Description: "No links"})

	for _, k := range [][2]string{{"property", "og:url"}, {"name", "twitter:url"}} {
		got, ok := Meta(doc, k[0], k[1])
		require.True(t, ok)
		assert.Equal(t, "https://jane.dev/#about", got)
	}
	for _, k := range [][2]string{{"property", "og:image"}, {"name", "twitter:image"}} {
		got, ok := Meta(doc, k[0], k[1])
		require.True(t, ok)
		assert.Equal(t, "https://jane.dev/og-image.jpg", got)
	}
	href, ok := Canonical(doc)
	require.True(t, ok)
	assert.Equal(t, "https://jane.dev/#about", href)

	title, _ := Meta(doc, "property", "og:title")
	assert.Equal(t, "Bare", title)
}

func TestSyncCanonicalOnlyWithURL(t *testing.T) {
	doc := newDoc(t, blankPage)
	Sync(doc, Descriptor{Title: "T", URL: ""})
	_, ok := Canonical(doc)
	assert.False(t, ok)
	_, ok = Meta(doc, "property", "og:url")
	assert.False(t, ok)
	_, ok = Meta(doc, "name", "twitter:image")
	assert.False(t, ok)

	Sync(doc, Descriptor{Title: "T", URL: "https://a/#x"})
	href, ok := Canonical(doc)
	require.True(t, ok)
	assert.Equal(t, "https://a/#x", href)
}

func TestSyncDefaultsType(t *testing.T) {
	doc := newDoc(t, blankPage)
	Sync(doc, Descriptor{Title: "T"})
	got, _ := Meta(doc, "property", "og:type")
	assert.Equal(t, DefaultType, got)
}

func TestSyncWithoutDocument(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync(nil, fullDescriptor())
		Sync(&goquery.Document{}, fullDescriptor())
	})
	assert.Equal(t, "", Title(nil))
}

func TestTagsOrder(t *testing.T) {
	keys := []string{}
	for _, tag := range Tags(fullDescriptor()) {
		keys = append(keys, tag.Key)
	}
	assert.Equal(t, []string{
		"description", "keywords", "author",
		"og:type", "og:url", "og:title", "og:description", "og:image",
		"twitter:card", "twitter:url", "twitter:title", "twitter:description", "twitter:image",
	}, keys)

	assert.Len(t, Tags(Descriptor{}), 9)
}
