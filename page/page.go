// Package page ties the section, metadata and theme controllers to one parsed
// HTML document and drives them through a mount/unmount lifecycle.
package page

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/view"
)

// PanelFunc returns the panel markup for a section.
type PanelFunc func(s view.Section) templ.Component

// Page is a single document and the controllers that reconcile it. A Page is
// owned by one goroutine.
type Page struct {
	doc     *goquery.Document
	view    *view.Controller
	theme   *theme.Controller
	ld      *seo.Injector
	panel   PanelFunc
	mounted bool
}

// New wires the controllers to doc. Metadata is synced on every section
// change while the page is mounted. panel may be nil when the panel never
// changes after the first render.
func New(doc *goquery.Document, v *view.Controller, th *theme.Controller, ld *seo.Injector, panel PanelFunc) *Page {
	p := &Page{doc: doc, view: v, theme: th, ld: ld, panel: panel}
	v.OnChange(func(d seo.Descriptor) {
		if p.mounted {
			seo.Sync(p.doc, d)
		}
	})
	return p
}

// Parse renders c and parses the result into a document.
func Parse(ctx context.Context, c templ.Component) (*goquery.Document, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// Document returns the underlying document.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Section returns the active section.
func (p *Page) Section() view.Section {
	return p.view.Active()
}

// Dark reports whether the dark theme is active.
func (p *Page) Dark() bool {
	return p.theme.Dark()
}

// Mounted reports whether Mount has run without a matching Unmount.
func (p *Page) Mounted() bool {
	return p.mounted
}

// Mount injects structured data, syncs the metadata of the active section
// and applies the theme. Calling Mount on a mounted page does nothing.
func (p *Page) Mount() {
	if p.mounted {
		return
	}
	p.mounted = true
	p.ld.Mount(p.doc, p.view.Origin())
	seo.Sync(p.doc, p.view.Descriptor())
	p.applyTheme()
	p.markSection(p.view.Active())
}

// Unmount removes the structured data. The rest of the document is left as
// is and can still be rendered.
func (p *Page) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.ld.Unmount(p.doc)
}

// Select makes s the active section, swaps the panel and marks the
// navigation. Metadata follows through the OnChange hook.
func (p *Page) Select(ctx context.Context, s view.Section) error {
	if err := p.view.SetSection(s); err != nil {
		return err
	}
	if p.panel != nil {
		if err := p.SetPanel(ctx, p.panel(s)); err != nil {
			return err
		}
	}
	p.markSection(s)
	return nil
}

// ToggleTheme flips the theme, persists it and re-applies it to the document.
func (p *Page) ToggleTheme() (bool, error) {
	dark, err := p.theme.Toggle()
	p.applyTheme()
	return dark, err
}

// SetPanel replaces the contents of #panel with c.
func (p *Page) SetPanel(ctx context.Context, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render panel: %w", err)
	}
	p.doc.Find("#panel").SetHtml(buf.String())
	return nil
}

// Render writes the document as HTML.
func (p *Page) Render(w io.Writer) error {
	if p.doc == nil || len(p.doc.Nodes) == 0 {
		return nil
	}
	return html.Render(w, p.doc.Nodes[0])
}

// HTML returns the rendered document.
func (p *Page) HTML() (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *Page) applyTheme() {
	p.theme.Apply(p.doc)
	label := "Switch to dark mode"
	if p.theme.Dark() {
		label = "Switch to light mode"
	}
	p.doc.Find("[data-theme-toggle]").SetAttr("aria-label", label)
}

func (p *Page) markSection(s view.Section) {
	links := p.doc.Find("#sections a[data-section]")
	links.RemoveAttr("aria-current").RemoveClass("active")
	links.FilterFunction(func(_ int, a *goquery.Selection) bool {
		v, _ := a.Attr("data-section")
		return v == string(s)
	}).SetAttr("aria-current", "page").AddClass("active")
	p.doc.Find(`form.theme-form input[name="section"]`).SetAttr("value", string(s))
}
