package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/eringen/folio/view"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

// Markdown renders src as HTML. Raw HTML in src is dropped and replaced by a
// "raw HTML omitted" comment.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return md.Convert([]byte(src), w)
	})
}

// SectionHref is the full-page URL of a section.
func SectionHref(s view.Section) string {
	if s == view.Default {
		return "/"
	}
	return "/?section=" + url.QueryEscape(string(s))
}

// StaticHref is the path of a section in a static export.
func StaticHref(s view.Section) string {
	if s == view.Default {
		return "/"
	}
	return "/" + url.PathEscape(string(s)) + "/"
}

// PartialHref is the HTMX endpoint returning a section panel.
func PartialHref(s view.Section) string {
	return "/section/" + url.PathEscape(string(s)) + "/"
}

// TagHref filters the blog panel by tag.
func TagHref(tag string) string {
	if tag == "" {
		return SectionHref(view.Blog)
	}
	return SectionHref(view.Blog) + "&tag=" + url.QueryEscape(tag)
}

// ToggleLabel is the accessible label of the theme toggle.
func ToggleLabel(dark bool) string {
	if dark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

func copyright(name string) string {
	return "© " + strconv.Itoa(time.Now().Year()) + " " + name
}
