package content

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlRemover = bluemonday.StrictPolicy()
	spaces      = regexp.MustCompile(`\s+`)
)

// PlainText strips markup from s and collapses whitespace, for use in meta
// tags and feeds.
func PlainText(s string) string {
	s = htmlRemover.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// normalizeDate rewrites a human date such as "Nov 28, 2025" as YYYY-MM-DD.
// Dates that do not parse are returned unchanged for Validate to reject.
func normalizeDate(date string) string {
	if _, err := time.Parse(DateLayout, date); err == nil {
		return date
	}
	t, err := dateparse.ParseStrict(date)
	if err != nil {
		return date
	}
	return t.Format(DateLayout)
}
