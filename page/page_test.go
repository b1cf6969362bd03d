package page

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/view"
)

const shell = `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body>
<button data-theme-toggle aria-label="x"></button>
<form class="theme-form"><input type="hidden" name="section" value="about"></form>
<nav id="sections">
<a data-section="about">About</a><a data-section="projects">Projects</a>
<a data-section="education">Education</a><a data-section="blog">Blog</a>
<a data-section="contact">Contact</a>
</nav>
<main id="panel"><p>initial</p></main></body></html>`

const origin = "https://example.com"

func panelFor(s view.Section) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section id="`+string(s)+`-panel">`+s.Label()+`</section>`)
		return err
	})
}

func newPage(t *testing.T, store theme.Storage) *Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shell))
	require.NoError(t, err)
	base := view.BaseDescriptor("Jane Doe", "Portfolio of Jane", "go, web", "Jane Doe", origin)
	v := view.NewController(base, origin, nil)
	th := theme.New(store, func() bool { return false })
	ld := &seo.Injector{
		Person: seo.Person{Name: "Jane Doe", JobTitle: "Engineer"},
		Site:   seo.Site{Name: "Jane Doe", Author: "Jane Doe"},
	}
	return New(doc, v, th, ld, panelFor)
}

func TestMountInjectsStructuredDataOnce(t *testing.T) {
	p := newPage(t, theme.NewMemoryStorage())
	p.Mount()
	p.Mount()

	blocks := seo.StructuredData(p.Document())
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], `"@type":"Person"`)
	assert.Contains(t, blocks[1], `"@type":"WebSite"`)
	assert.Equal(t, "About - Jane Doe", seo.Title(p.Document()))
	assert.True(t, p.Mounted())

	p.Unmount()
	assert.Empty(t, seo.StructuredData(p.Document()))
	assert.False(t, p.Mounted())
}

func TestSelectSyncsMetadata(t *testing.T) {
	p := newPage(t, theme.NewMemoryStorage())
	p.Mount()
	ctx := context.Background()

	for _, s := range view.Sections() {
		require.NoError(t, p.Select(ctx, s))
		doc := p.Document()

		assert.Equal(t, s.Label()+" - Jane Doe", seo.Title(doc))
		canonical, ok := seo.Canonical(doc)
		require.True(t, ok)
		assert.Equal(t, origin+"/#"+string(s), canonical)

		assert.Equal(t, 1, doc.Find(`meta[name="description"]`).Length())
		assert.Equal(t, 1, doc.Find(`link[rel="canonical"]`).Length())
		assert.Equal(t, 1, doc.Find("title").Length())
		assert.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())

		assert.Equal(t, 1, doc.Find("#panel #"+string(s)+"-panel").Length())
		current := doc.Find(`#sections a[aria-current="page"]`)
		require.Equal(t, 1, current.Length())
		assert.Equal(t, s.Label(), current.Text())
		assert.True(t, current.HasClass("active"))
		value, _ := doc.Find(`form.theme-form input[name="section"]`).Attr("value")
		assert.Equal(t, string(s), value)
	}
}

func TestSelectBeforeMountLeavesHeadAlone(t *testing.T) {
	p := newPage(t, theme.NewMemoryStorage())
	require.NoError(t, p.Select(context.Background(), view.Blog))
	assert.Equal(t, "", seo.Title(p.Document()))

	p.Mount()
	assert.Equal(t, "Blog - Jane Doe", seo.Title(p.Document()))
}

func TestSelectRejectsUnknownSection(t *testing.T) {
	p := newPage(t, theme.NewMemoryStorage())
	p.Mount()
	err := p.Select(context.Background(), view.Section("resume"))
	assert.True(t, errors.Is(err, view.ErrInvalidSection))
	assert.Equal(t, view.About, p.Section())
	assert.Equal(t, 1, p.Document().Find("#panel p").Length())
}

func TestToggleThemeAppliesAndPersists(t *testing.T) {
	store := theme.NewMemoryStorage()
	p := newPage(t, store)
	p.Mount()
	doc := p.Document()
	assert.False(t, doc.Find("html").HasClass(theme.DarkClass))

	dark, err := p.ToggleTheme()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, doc.Find("html").HasClass(theme.DarkClass))
	assert.True(t, doc.Find("body").HasClass(theme.DarkClass))
	label, _ := doc.Find("[data-theme-toggle]").Attr("aria-label")
	assert.Equal(t, "Switch to light mode", label)
	stored, _ := store.Get(theme.StorageKey)
	assert.Equal(t, "dark", stored)

	dark, err = p.ToggleTheme()
	require.NoError(t, err)
	assert.False(t, dark)
	assert.False(t, doc.Find("body").HasClass(theme.DarkClass))
	stored, _ = store.Get(theme.StorageKey)
	assert.Equal(t, "light", stored)
}

func TestMountAppliesStoredTheme(t *testing.T) {
	store := theme.NewMemoryStorage()
	require.NoError(t, store.Set(theme.StorageKey, "dark"))
	p := newPage(t, store)
	p.Mount()
	assert.True(t, p.Dark())
	assert.True(t, p.Document().Find("html").HasClass(theme.DarkClass))
}

func TestRenderSerialisesDocument(t *testing.T) {
	p := newPage(t, theme.NewMemoryStorage())
	p.Mount()
	out, err := p.HTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>About - Jane Doe</title>")
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/#about"/>`)
}

func TestParse(t *testing.T) {
	doc, err := Parse(context.Background(), panelFor(view.Contact))
	require.NoError(t, err)
	assert.Equal(t, "Contact", doc.Find("#contact-panel").Text())
}
