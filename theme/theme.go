// Package theme tracks the light/dark preference of a page and applies it to
// the document's root and body elements.
package theme

import (
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const (
	// StorageKey is the durable-storage key holding the preference.
	StorageKey = "theme"
	// DarkClass is the class token toggled on <html> and <body>.
	DarkClass = "dark"

	dark  = "dark"
	light = "light"
)

// Storage is a synchronous key-value store that outlives a single page.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Preference reports whether the host environment prefers a dark color scheme.
type Preference func() bool

// Controller holds the dark flag. The stored value wins over the preference,
// which is only consulted when nothing has been stored yet.
type Controller struct {
	store Storage
	dark  bool
}

// New initialises a controller from store, falling back to pref. Any
// non-empty stored value is authoritative and only "dark" means dark. A nil
// pref means light.
func New(store Storage, pref Preference) *Controller {
	c := &Controller{store: store}
	if v, ok := store.Get(StorageKey); ok && v != "" {
		c.dark = v == dark
	} else if pref != nil {
		c.dark = pref()
	}
	return c
}

// Dark reports whether the dark theme is active.
func (c *Controller) Dark() bool {
	return c.dark
}

// Name returns "dark" or "light".
func (c *Controller) Name() string {
	return name(c.dark)
}

// Toggle flips the flag, persists it and returns the new value.
func (c *Controller) Toggle() (bool, error) {
	if err := c.Set(!c.dark); err != nil {
		return c.dark, err
	}
	return c.dark, nil
}

// Set stores v as the active flag.
func (c *Controller) Set(v bool) error {
	if err := c.store.Set(StorageKey, name(v)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	c.dark = v
	return nil
}

// Apply adds or removes DarkClass on the root and body of doc. A nil document
// is a no-op.
func (c *Controller) Apply(doc *goquery.Document) {
	if doc == nil || doc.Selection == nil {
		return
	}
	scopes := doc.Find("html, body")
	if c.dark {
		scopes.AddClass(DarkClass)
	} else {
		scopes.RemoveClass(DarkClass)
	}
}

// Parse converts a stored or user-supplied value into a flag.
func Parse(v string) (bool, error) {
	switch v {
	case dark:
		return true, nil
	case light:
		return false, nil
	}
	return false, fmt.Errorf("unknown theme %q", v)
}

func name(isDark bool) string {
	if isDark {
		return dark
	}
	return light
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
