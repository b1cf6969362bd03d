// Package folio serves a single-page portfolio with blog previews, built with
// Go, Echo and templ. Every page keeps its title, meta tags, canonical link and
// structured data in sync with the selected section and the visitor's theme.
package folio

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/log"
	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/view"
	"github.com/eringen/folio/views"
)

// themeTogglesPerMinute caps POST /theme/ per client IP.
const themeTogglesPerMinute = 30

// App is the central folio application. It wires together the content,
// store, cache, handlers and middleware.
type App struct {
	Config  SiteConfig
	Content *content.Content
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	OGImage *OGImage

	themeLimiter *Limiter
	descriptions view.Descriptions
	htmx         bool
	opened       bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open loads the content, opens the store, seeds it with the content's blog
// previews and prepares the Open Graph image. Start calls Open; the export
// command calls it directly.
func (a *App) Open() error {
	if a.opened {
		return nil
	}
	if a.Content == nil {
		c, err := content.Load(a.Config.ContentPath)
		if err != nil {
			return fmt.Errorf("folio: load content: %w", err)
		}
		a.Content = c
	}
	a.applyContentDefaults()

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	n, err := a.Store.SeedPosts(a.Content.Posts)
	if err != nil {
		return fmt.Errorf("folio: seed posts: %w", err)
	}
	if n > 0 {
		log.S().Infow("seeded blog previews", "count", n)
	}

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.OGImage = NewOGImage(a.Config.OGSourceImage)
	a.htmx = a.hasStatic(htmxScript)
	if !a.htmx {
		log.S().Infow("htmx not found in static dir, section links load full pages", "dir", a.Config.StaticDir)
	}
	a.opened = true
	return nil
}

// Setup opens the app and registers middleware and routes without starting
// the server.
func (a *App) Setup() error {
	if err := a.Open(); err != nil {
		return err
	}
	if a.themeLimiter == nil {
		a.themeLimiter = NewLimiter(themeTogglesPerMinute, time.Minute)
	}
	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start sets up the app and starts the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}
	if err := a.Setup(); err != nil {
		return err
	}

	log.S().Infow("listening", "addr", a.Config.Addr, "url", a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/theme.js", a.handleEmbedded("theme.js"))
	e.GET("/public/site.css", a.handleEmbedded("site.css"))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/og-image.jpg", a.handleOGImage)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/section/:name/", a.handleSection)
	e.POST("/theme/", a.handleTheme)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.themeLimiter != nil {
		a.themeLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// applyContentDefaults fills site metadata the config leaves empty from the
// profile.
func (a *App) applyContentDefaults() {
	p := a.Content.Profile
	if a.Config.Name == "" {
		a.Config.Name = p.Name
	}
	if a.Config.Author == "" {
		a.Config.Author = p.Name
	}
	if a.Config.Description == "" {
		a.Config.Description = content.PlainText(p.Summary)
	}
	if a.Config.Keywords == "" {
		a.Config.Keywords = strings.Join(p.KnowsAbout, ", ")
	}

	overrides := make(map[view.Section]string, len(a.Content.Descriptions))
	for k, v := range a.Content.Descriptions {
		if s, err := view.ParseSection(k); err == nil {
			overrides[s] = v
		} else {
			log.S().Warnw("ignoring description for unknown section", "section", k)
		}
	}
	a.descriptions = view.DefaultDescriptions().Merge(overrides)
}

// Site returns the settings the templates read.
func (a *App) Site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// BaseDescriptor is the metadata every section derives from.
func (a *App) BaseDescriptor() seo.Descriptor {
	return view.BaseDescriptor(a.Config.Name, a.Config.Description, a.Config.Keywords, a.Config.Author, a.Config.URL)
}

// Injector returns the structured-data blocks for this site.
func (a *App) Injector() *seo.Injector {
	p := a.Content.Profile
	return &seo.Injector{
		Person: seo.Person{
			Name:        p.Name,
			JobTitle:    p.Role,
			Description: content.PlainText(p.Summary),
			Email:       p.Email,
			Locality:    p.Locality,
			Country:     p.Country,
			SameAs:      p.SocialURLs(),
			KnowsAbout:  p.KnowsAbout,
		},
		Site: seo.Site{
			Name:        a.Config.Name,
			Description: a.Config.Description,
			Author:      a.Config.Author,
		},
	}
}
