// Package seo reconciles a page's <head> with per-view metadata and manages
// the schema.org structured-data blocks embedded in it.
package seo

// DefaultType is the Open Graph type used when a descriptor leaves Type empty.
const DefaultType = "website"

// TwitterCard is the constant twitter:card value written on every sync.
const TwitterCard = "summary_large_image"

// Descriptor carries the metadata a single view publishes in the document head.
type Descriptor struct {
	Title       string
	Description string
	Keywords    string // comma-separated terms
	Author      string
	URL         string // absolute URL or empty
	Image       string // absolute URL or empty
	Type        string
}

// WithDefaults returns a copy of d with Type set to DefaultType when empty.
func (d Descriptor) WithDefaults() Descriptor {
	if d.Type == "" {
		d.Type = DefaultType
	}
	return d
}

// Tag is one <meta> element tracked by Sync: the element is matched on
// Attr=Key and its content attribute set to Content.
type Tag struct {
	Attr    string // "name" or "property"
	Key     string
	Content string
}

// Tags returns the tracked meta tags for d in the order Sync applies them.
// Tags bound to an empty URL or Image are omitted; the corresponding elements
// already in a document are left untouched.
func Tags(d Descriptor) []Tag {
	d = d.WithDefaults()
	tags := []Tag{
		{"name", "description", d.Description},
		{"name", "keywords", d.Keywords},
		{"name", "author", d.Author},
		{"property", "og:type", d.Type},
	}
	if d.URL != "" {
		tags = append(tags, Tag{"property", "og:url", d.URL})
	}
	tags = append(tags,
		Tag{"property", "og:title", d.Title},
		Tag{"property", "og:description", d.Description},
	)
	if d.Image != "" {
		tags = append(tags, Tag{"property", "og:image", d.Image})
	}
	tags = append(tags, Tag{"name", "twitter:card", TwitterCard})
	if d.URL != "" {
		tags = append(tags, Tag{"name", "twitter:url", d.URL})
	}
	tags = append(tags,
		Tag{"name", "twitter:title", d.Title},
		Tag{"name", "twitter:description", d.Description},
	)
	if d.Image != "" {
		tags = append(tags, Tag{"name", "twitter:image", d.Image})
	}
	return tags
}
