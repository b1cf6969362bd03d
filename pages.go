package folio

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/folio/page"
	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/view"
	"github.com/eringen/folio/views"
)

// PageData collects what the layout renders for section s. tag filters the
// blog panel.
func (a *App) PageData(s view.Section, tag string) (views.PageData, error) {
	posts, tags, err := a.Cache.Blog(tag)
	if err != nil {
		return views.PageData{}, fmt.Errorf("load blog previews: %w", err)
	}
	return views.PageData{
		Site:      a.Site(),
		Content:   a.Content,
		Section:   s,
		Posts:     posts,
		Tags:      tags,
		ActiveTag: normalizeTag(tag),
		HTMX:      a.htmx,
	}, nil
}

// NewPage renders the layout for data, wires the section, metadata and theme
// controllers to it and mounts it. Selecting another section on the returned
// page swaps the panel and re-syncs the head.
func (a *App) NewPage(ctx context.Context, data views.PageData, th *theme.Controller) (*page.Page, error) {
	data.Dark = th.Dark()
	doc, err := page.Parse(ctx, views.Layout(data))
	if err != nil {
		return nil, err
	}

	v := view.NewController(a.BaseDescriptor(), a.Config.URL, a.descriptions)
	if err := v.SetSection(data.Section); err != nil {
		return nil, err
	}

	panel := func(s view.Section) templ.Component {
		d := data
		d.Section = s
		return views.Panel(d)
	}
	p := page.New(doc, v, th, a.Injector(), panel)
	p.Mount()
	return p, nil
}

// Descriptor returns the metadata of section s.
func (a *App) Descriptor(s view.Section) seo.Descriptor {
	return view.Describe(a.BaseDescriptor(), a.Config.URL, a.descriptions, s)
}
