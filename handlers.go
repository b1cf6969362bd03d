package folio

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/log"
	"github.com/eringen/folio/view"
	"github.com/eringen/folio/views"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func (a *App) handleHome(c echo.Context) error {
	s := view.Default
	if raw := c.QueryParam("section"); raw != "" {
		parsed, err := view.ParseSection(raw)
		if err != nil {
			return echo.ErrNotFound
		}
		s = parsed
	}
	return a.renderSection(c, s)
}

// handleSection serves a section switch. HTMX requests get the panel, the new
// title and the navigation; everything else gets the full page.
func (a *App) handleSection(c echo.Context) error {
	s, err := view.ParseSection(c.Param("name"))
	if err != nil {
		return echo.ErrNotFound
	}
	c.Response().Header().Add(echo.HeaderVary, "HX-Request")
	if !isHTMX(c) {
		return a.renderSection(c, s)
	}
	data, err := a.PageData(s, c.QueryParam("tag"))
	if err != nil {
		return err
	}
	data.Dark = a.visitorTheme(c).Dark()
	data.CSRFToken = CsrfToken(c)
	return Render(c, views.SectionPartial(a.Descriptor(s).Title, data))
}

func (a *App) renderSection(c echo.Context, s view.Section) error {
	data, err := a.PageData(s, c.QueryParam("tag"))
	if err != nil {
		return err
	}
	data.CSRFToken = CsrfToken(c)
	p, err := a.NewPage(c.Request().Context(), data, a.visitorTheme(c))
	if err != nil {
		return err
	}
	defer p.Unmount()
	return RenderPage(c, p)
}

// handleTheme toggles the visitor's theme and sends them back to the section
// they were on.
func (a *App) handleTheme(c echo.Context) error {
	if !a.themeLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many theme changes")
	}
	th := a.visitorTheme(c)
	dark, err := th.Toggle()
	if err != nil {
		return err
	}
	log.S().Debugw("theme toggled", "theme", th.Name(), "dark", dark)

	if isHTMX(c) {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusNoContent)
	}
	s, err := view.ParseSection(c.FormValue("section"))
	if err != nil {
		s = view.Default
	}
	return c.Redirect(http.StatusSeeOther, views.SectionHref(s))
}

// handlePost sends a preview link to its card on the blog panel.
func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Redirect(http.StatusMovedPermanently, views.SectionHref(view.Blog)+"#"+url.PathEscape(post.Slug))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, views.SectionHref(view.Blog))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleOGImage(c echo.Context) error {
	b, err := a.OGImage.Bytes(a.Content.Profile)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", b)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.Site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.S().Errorw("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, views.ServerError(a.Site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
