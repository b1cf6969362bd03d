package seo

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LDJSONType is the script type of schema.org structured-data blocks.
const LDJSONType = "application/ld+json"

// Person describes the site owner for the schema.org Person block.
type Person struct {
	Name        string
	JobTitle    string
	Description string
	Email       string
	Locality    string
	Country     string
	SameAs      []string
	KnowsAbout  []string
}

// Site describes the website for the schema.org WebSite block.
type Site struct {
	Name        string
	Description string
	Author      string
}

// PersonJsonLD returns the Person document. url is omitted when origin is empty.
func PersonJsonLD(p Person, origin string) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        p.Name,
		"jobTitle":    p.JobTitle,
		"description": p.Description,
	}
	if p.Email != "" {
		data["email"] = p.Email
	}
	if origin != "" {
		data["url"] = origin
	}
	if p.Locality != "" || p.Country != "" {
		data["address"] = map[string]string{
			"@type":           "PostalAddress",
			"addressLocality": p.Locality,
			"addressCountry":  p.Country,
		}
	}
	if len(p.SameAs) > 0 {
		data["sameAs"] = p.SameAs
	}
	if len(p.KnowsAbout) > 0 {
		data["knowsAbout"] = p.KnowsAbout
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WebsiteJsonLD returns the WebSite document. url is omitted when origin is empty.
func WebsiteJsonLD(s Site, origin string) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        s.Name,
		"description": s.Description,
	}
	if origin != "" {
		data["url"] = origin
	}
	if s.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  s.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Injector owns the structured-data blocks of a page. Mount runs once when a
// page is set up and Unmount once when it is torn down.
type Injector struct {
	Person Person
	Site   Site
}

// Mount removes every existing ld+json script from doc and appends the Person
// and WebSite blocks to the head, in that order.
func (in *Injector) Mount(doc *goquery.Document, origin string) {
	h := head(doc)
	if h.Length() == 0 {
		return
	}
	removeLD(doc)
	appendLD(h, PersonJsonLD(in.Person, origin))
	appendLD(h, WebsiteJsonLD(in.Site, origin))
}

// Unmount removes every ld+json script from doc, including ones this
// injector did not add.
func (in *Injector) Unmount(doc *goquery.Document) {
	if doc == nil || doc.Selection == nil {
		return
	}
	removeLD(doc)
}

// StructuredData returns the text of every ld+json script in document order.
func StructuredData(doc *goquery.Document) []string {
	if doc == nil || doc.Selection == nil {
		return nil
	}
	var out []string
	doc.Find(attrSelector("script", "type", LDJSONType)).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func removeLD(doc *goquery.Document) {
	doc.Find(attrSelector("script", "type", LDJSONType)).Remove()
}

func appendLD(h *goquery.Selection, body string) {
	script := appendElement(h, "script", "type", LDJSONType)
	script.Nodes[0].AppendChild(&html.Node{Type: html.TextNode, Data: body})
}
