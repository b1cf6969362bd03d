package folio

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache keeps the published blog previews and their tags in memory for
// ttl. Every page render reads from it; the store is only queried on expiry.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return !c.fetched.IsZero() && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read reloads from the store.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.fetched = time.Time{}
	c.mu.Unlock()
}

// snapshot returns the cached posts and tags, reloading them first when
// stale. Readers share the read lock; a reload takes the write lock.
func (c *PostCache) snapshot() ([]BlogPost, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		posts, err := c.store.ListPosts("")
		if err != nil {
			return nil, nil, err
		}
		tags, err := c.store.ListTags()
		if err != nil {
			return nil, nil, err
		}
		c.posts, c.tags, c.fetched = posts, tags, time.Now()
	}
	return c.posts, c.tags, nil
}

// Blog returns the previews shown on the blog panel, filtered by tag when
// tag is non-empty, together with every known tag.
func (c *PostCache) Blog(tag string) ([]BlogPost, []string, error) {
	posts, tags, err := c.snapshot()
	if err != nil {
		return nil, nil, err
	}
	return filterByTag(posts, tag), tags, nil
}

// ListPosts returns published previews, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]BlogPost, error) {
	posts, _, err := c.Blog(tag)
	return posts, err
}

// ListTags returns all unique tags from published previews.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.snapshot()
	return tags, err
}

// GetPost returns a single published preview by slug.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, _, err := c.snapshot()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

func filterByTag(posts []BlogPost, tag string) []BlogPost {
	if tag == "" {
		return posts
	}
	normalized := normalizeTag(tag)
	return lo.Filter(posts, func(p BlogPost, _ int) bool {
		return lo.ContainsBy(p.Tags, func(t string) bool {
			return normalizeTag(t) == normalized
		})
	})
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
