package views

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/view"
)

// SiteConfig holds site-wide settings the templates read.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// BlogPost is a blog preview as stored in SQLite and rendered on the blog panel.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Preview   string
	ReadTime  string
	Slug      string
	Link      string
	Published bool
}

// PageData is everything the layout and the section panels render.
type PageData struct {
	Site      SiteConfig
	Content   *content.Content
	Section   view.Section
	Posts     []BlogPost
	Tags      []string
	ActiveTag string
	Dark      bool
	CSRFToken string
	Static    bool // rendered for static hosting: no server round trips
	HTMX      bool // htmx is served, so section links swap the panel in place
}

// Navigation is how section links reach their target.
type Navigation int

const (
	// FullPage links load the whole page from the server.
	FullPage Navigation = iota
	// Swap links fetch the panel with htmx and fall back to a full page.
	Swap
	// Exported links point at the pages of a static export.
	Exported
)

// Href is the link target of section s.
func (n Navigation) Href(s view.Section) string {
	if n == Exported {
		return StaticHref(s)
	}
	return SectionHref(s)
}

// Navigation reports how the section links of d are rendered.
func (d PageData) Navigation() Navigation {
	switch {
	case d.Static:
		return Exported
	case d.HTMX:
		return Swap
	}
	return FullPage
}

// TagFilters returns the blog tags offered as filters. Exported pages have no
// server to filter with.
func (d PageData) TagFilters() []string {
	if d.Static {
		return nil
	}
	return d.Tags
}
