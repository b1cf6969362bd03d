package seo

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// head returns the document's <head>, or an empty selection when doc is nil
// or has no head element.
func head(doc *goquery.Document) *goquery.Selection {
	if doc == nil || doc.Selection == nil {
		return &goquery.Selection{}
	}
	return doc.Find("head").First()
}

// appendElement creates <tag attrs...> as the last child of parent and
// returns it. attrs is a flat key, value list.
func appendElement(parent *goquery.Selection, tag string, attrs ...string) *goquery.Selection {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	parent.AppendNodes(n)
	return parent.Children().Last()
}

func attrSelector(tag, attr, value string) string {
	return fmt.Sprintf("%s[%s=%q]", tag, attr, value)
}
