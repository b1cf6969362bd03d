// Package view holds the active-section state of the portfolio page and
// derives the metadata descriptor published for each section.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/folio/seo"
)

// ErrInvalidSection is returned for identifiers outside the known sections.
var ErrInvalidSection = errors.New("invalid section")

// Section identifies one content panel of the page.
type Section string

const (
	About     Section = "about"
	Projects  Section = "projects"
	Education Section = "education"
	Blog      Section = "blog"
	Contact   Section = "contact"
)

// Default is the section shown when none is selected.
const Default = About

// Sections returns every section in navigation order.
func Sections() []Section {
	return []Section{About, Projects, Education, Blog, Contact}
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	switch s {
	case About, Projects, Education, Blog, Contact:
		return true
	}
	return false
}

// Label is the navigation label for s.
func (s Section) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseSection converts a raw identifier into a Section.
func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSection, raw)
	}
	return s, nil
}

// Descriptions maps each section to the meta description it publishes.
type Descriptions map[Section]string

// DefaultDescriptions returns a fresh copy of the built-in descriptions.
func DefaultDescriptions() Descriptions {
	return Descriptions{
		About:     "Learn about my journey as a full stack developer, my skills, and what I'm currently learning.",
		Projects:  "Explore my portfolio of web applications and projects built with modern technologies.",
		Education: "My educational background including SSLC, PUC, BCA, and current MCA studies.",
		Blog:      "Daily learnings and technical insights about web development, React, Node.js, and more.",
		Contact:   "Get in touch with me for opportunities, collaborations, or just to chat about technology.",
	}
}

// Merge returns a copy of d with non-empty entries of other applied on top.
func (d Descriptions) Merge(other map[Section]string) Descriptions {
	out := make(Descriptions, len(d))
	for s, v := range d {
		out[s] = v
	}
	for s, v := range other {
		if s.Valid() && v != "" {
			out[s] = v
		}
	}
	return out
}

// Describe merges the entry for s onto base. Sections without an entry fall
// back to About. Only Title, Description and URL are overridden.
func Describe(base seo.Descriptor, origin string, desc Descriptions, s Section) seo.Descriptor {
	if _, ok := desc[s]; !ok || !s.Valid() {
		s = About
	}
	d := base
	d.Title = s.Label() + " - " + base.Title
	d.Description = desc[s]
	d.URL = origin + "/#" + string(s)
	return d
}

// Controller tracks the active section and notifies listeners on every
// transition. It is owned by a single page and is not safe for concurrent use.
type Controller struct {
	active    Section
	base      seo.Descriptor
	origin    string
	desc      Descriptions
	listeners []func(seo.Descriptor)
}

// NewController returns a controller on the default section. origin is the
// deployed site origin without a trailing slash, or "" when unknown.
// desc may be nil, in which case DefaultDescriptions is used.
func NewController(base seo.Descriptor, origin string, desc Descriptions) *Controller {
	if desc == nil {
		desc = DefaultDescriptions()
	}
	return &Controller{
		active: Default,
		base:   base,
		origin: strings.TrimSuffix(origin, "/"),
		desc:   desc,
	}
}

// Active returns the current section.
func (c *Controller) Active() Section {
	return c.active
}

// Origin returns the origin used to build section URLs.
func (c *Controller) Origin() string {
	return c.origin
}

// SetSection makes s active and runs every OnChange listener with the new
// descriptor, even when s was already active.
func (c *Controller) SetSection(s Section) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSection, string(s))
	}
	c.active = s
	d := c.Descriptor()
	for _, fn := range c.listeners {
		fn(d)
	}
	return nil
}

// Descriptor derives the metadata for the active section.
func (c *Controller) Descriptor() seo.Descriptor {
	return Describe(c.base, c.origin, c.desc, c.active)
}

// OnChange registers fn to run after every SetSection call.
func (c *Controller) OnChange(fn func(seo.Descriptor)) {
	c.listeners = append(c.listeners, fn)
}

// BaseDescriptor builds the static descriptor every section derives from.
// The image points at the generated Open Graph image when origin is known.
func BaseDescriptor(title, description, keywords, author, origin string) seo.Descriptor {
	origin = strings.TrimSuffix(origin, "/")
	d := seo.Descriptor{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Author:      author,
		URL:         origin,
		Type:        seo.DefaultType,
	}
	if origin != "" {
		d.Image = origin + "/og-image.jpg"
	}
	return d
}
