// Package content holds the static portfolio data: profile, projects,
// education, blog previews and section descriptions.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// DateLayout is the layout of every date stored in content files.
const DateLayout = "2006-01-02"

// Link is a labelled external URL.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Profile describes the site owner.
type Profile struct {
	Name       string   `yaml:"name"`
	Role       string   `yaml:"role"`
	Tagline    string   `yaml:"tagline"`
	Summary    string   `yaml:"summary"`
	Email      string   `yaml:"email"`
	Location   string   `yaml:"location"`
	Locality   string   `yaml:"locality"`
	Country    string   `yaml:"country"`
	Remote     string   `yaml:"remote"`
	Socials    []Link   `yaml:"socials"`
	About      string   `yaml:"about"`  // markdown
	Skills     string   `yaml:"skills"` // markdown
	Stack      []string `yaml:"stack"`
	KnowsAbout []string `yaml:"knows_about"`
}

// Project is one entry of the projects panel.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Links       []Link   `yaml:"links"`
}

// Education is one entry of the education timeline.
type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Detail      string `yaml:"detail"`
	Current     bool   `yaml:"current"`
}

// Post is a blog preview.
type Post struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Date     string   `yaml:"date"`
	Preview  string   `yaml:"preview"`
	ReadTime string   `yaml:"read_time"`
	Tags     []string `yaml:"tags"`
}

// Content is everything the page renders.
type Content struct {
	Profile      Profile           `yaml:"profile"`
	Projects     []Project         `yaml:"projects"`
	Education    []Education       `yaml:"education"`
	Posts        []Post            `yaml:"posts"`
	Descriptions map[string]string `yaml:"descriptions"`
	Contact      string            `yaml:"contact"`
	SourceURL    string            `yaml:"source_url"`
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load reads content from path. An empty path returns the embedded content.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML content.
func Parse(b []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	for i := range c.Posts {
		c.Posts[i].Date = normalizeDate(c.Posts[i].Date)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields the page cannot render without.
func (c *Content) Validate() error {
	if c.Profile.Name == "" {
		return fmt.Errorf("profile.name is required")
	}
	seen := make(map[string]struct{}, len(c.Posts))
	for i, p := range c.Posts {
		if p.Slug == "" {
			return fmt.Errorf("posts[%d]: slug is required", i)
		}
		if _, ok := seen[p.Slug]; ok {
			return fmt.Errorf("posts[%d]: duplicate slug %q", i, p.Slug)
		}
		seen[p.Slug] = struct{}{}
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return fmt.Errorf("posts[%d]: invalid date %q, use YYYY-MM-DD", i, p.Date)
		}
	}
	return nil
}

// SocialURLs returns the URL of every social link.
func (p Profile) SocialURLs() []string {
	return lo.Map(p.Socials, func(l Link, _ int) string {
		return l.URL
	})
}

// DisplayDate formats a YYYY-MM-DD date as "Jan 2, 2006", returning the
// input unchanged when it does not parse.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
