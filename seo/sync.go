package seo

import "github.com/PuerkitoBio/goquery"

// Sync reconciles the head of doc with d. It sets the document title, upserts
// every tag returned by Tags, and points link[rel=canonical] at d.URL when the
// URL is set. Running Sync twice with the same descriptor leaves the document
// unchanged after the first pass.
//
// Tags and the canonical link tied to an empty URL or Image keep whatever value
// a previous pass wrote. A nil document, or one without a head, is a no-op.
func Sync(doc *goquery.Document, d Descriptor) {
	h := head(doc)
	if h.Length() == 0 {
		return
	}
	d = d.WithDefaults()

	setTitle(doc, h, d.Title)
	for _, t := range Tags(d) {
		upsertMeta(doc, h, t)
	}
	if d.URL != "" {
		canonical := doc.Find(attrSelector("link", "rel", "canonical")).First()
		if canonical.Length() == 0 {
			canonical = appendElement(h, "link", "rel", "canonical")
		}
		canonical.SetAttr("href", d.URL)
	}
}

func setTitle(doc *goquery.Document, h *goquery.Selection, title string) {
	t := doc.Find("title").First()
	if t.Length() == 0 {
		t = appendElement(h, "title")
	}
	t.SetText(title)
}

func upsertMeta(doc *goquery.Document, h *goquery.Selection, t Tag) {
	el := doc.Find(attrSelector("meta", t.Attr, t.Key)).First()
	if el.Length() == 0 {
		el = appendElement(h, "meta", t.Attr, t.Key)
	}
	el.SetAttr("content", t.Content)
}

// Title returns the current document title, or "" when there is none.
func Title(doc *goquery.Document) string {
	if doc == nil || doc.Selection == nil {
		return ""
	}
	return doc.Find("title").First().Text()
}

// Meta returns the content of the first meta element matching attr=key.
func Meta(doc *goquery.Document, attr, key string) (string, bool) {
	if doc == nil || doc.Selection == nil {
		return "", false
	}
	return doc.Find(attrSelector("meta", attr, key)).First().Attr("content")
}

// Canonical returns the href of the canonical link, if one exists.
func Canonical(doc *goquery.Document) (string, bool) {
	if doc == nil || doc.Selection == nil {
		return "", false
	}
	return doc.Find(attrSelector("link", "rel", "canonical")).First().Attr("href")
}
