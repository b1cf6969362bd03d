package folio

import (
	"encoding/xml"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/view"
	"github.com/eringen/folio/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SectionHrefFunc maps a section to its path on the deployed site.
type SectionHrefFunc func(s view.Section) string

// sitemap lists the root and every other section. The blog section is dated
// by its newest preview.
func (a *App) sitemap(posts []BlogPost, href SectionHrefFunc) sitemapURLSet {
	base := a.Config.URL
	var urls []sitemapURL
	for _, s := range view.Sections() {
		u := sitemapURL{Loc: base + href(s)}
		if s == view.Blog && len(posts) > 0 {
			u.LastMod = posts[0].Date
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func writeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(v)
}

func (a *App) renderSitemap(c echo.Context, posts []BlogPost) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeXML(c.Response(), a.sitemap(posts, views.SectionHref))
}
