package folio

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the assets shipped with folio: site.css,
// theme.js and favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// htmxScript is not shipped with folio. When the user's static dir provides
// it, section links swap panels in place.
const htmxScript = "htmx.min.js"

// hasStatic reports whether the user's static dir holds a regular file name.
func (a *App) hasStatic(name string) bool {
	fi, err := os.Stat(filepath.Join(a.Config.StaticDir, name))
	return err == nil && fi.Mode().IsRegular()
}

// asset returns the user's copy of name from the static dir when present,
// otherwise the embedded one.
func (a *App) asset(name string) ([]byte, error) {
	if b, err := os.ReadFile(filepath.Join(a.Config.StaticDir, name)); err == nil {
		return b, nil
	}
	return fs.ReadFile(EmbeddedAssets, "embedded/"+name)
}

func contentTypeOf(name string) string {
	switch {
	case strings.HasSuffix(name, ".css"):
		return "text/css; charset=utf-8"
	case strings.HasSuffix(name, ".js"):
		return "text/javascript; charset=utf-8"
	case strings.HasSuffix(name, ".svg"):
		return "image/svg+xml"
	}
	return echo.MIMEOctetStream
}

func (a *App) handleEmbedded(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := a.asset(name)
		if err != nil {
			return echo.ErrNotFound
		}
		return c.Blob(http.StatusOK, contentTypeOf(name), b)
	}
}

func (a *App) handleFavicon(c echo.Context) error {
	return a.handleEmbedded("favicon.svg")(c)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robots())
}

func (a *App) robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if a.Config.URL != "" {
		b.WriteString("\nSitemap: " + a.Config.URL + "/sitemap.xml\n")
	}
	return b.String()
}
