package theme

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefers(v bool) Preference {
	return func() bool { return v }
}

func TestStoredValueWinsOverPreference(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Set(StorageKey, "light"))

	c := New(store, prefers(true))
	assert.False(t, c.Dark())
}

func TestUnknownStoredValueMeansLight(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Set(StorageKey, "blue"))

	called := false
	c := New(store, func() bool { called = true; return true })
	assert.False(t, c.Dark())
	assert.False(t, called)

	require.NoError(t, store.Set(StorageKey, ""))
	assert.True(t, New(store, prefers(true)).Dark())
}

func TestPreferenceUsedWithoutStoredValue(t *testing.T) {
	assert.True(t, New(NewMemoryStorage(), prefers(true)).Dark())
	assert.False(t, New(NewMemoryStorage(), prefers(false)).Dark())
	assert.False(t, New(NewMemoryStorage(), nil).Dark())
}

func TestPreferenceNotConsultedWhenStored(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Set(StorageKey, "dark"))

	called := false
	c := New(store, func() bool { called = true; return false })
	assert.True(t, c.Dark())
	assert.False(t, called)
}

func TestToggleRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	c := New(store, prefers(false))

	v, err := c.Toggle()
	require.NoError(t, err)
	assert.True(t, v)
	stored, _ := store.Get(StorageKey)
	assert.Equal(t, "dark", stored)

	v, err = c.Toggle()
	require.NoError(t, err)
	assert.False(t, v)
	stored, _ = store.Get(StorageKey)
	assert.Equal(t, "light", stored)
	assert.Equal(t, "light", c.Name())
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool) { return "", false }
func (failingStorage) Set(string, string) error  { return errors.New("disk full") }

func TestToggleKeepsFlagWhenStoreFails(t *testing.T) {
	c := New(failingStorage{}, prefers(false))
	v, err := c.Toggle()
	assert.Error(t, err)
	assert.False(t, v)
	assert.False(t, c.Dark())
}

func TestApply(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html class="h-full"><head></head><body class="antialiased"></body></html>`))
	require.NoError(t, err)

	c := New(NewMemoryStorage(), prefers(true))
	c.Apply(doc)
	assert.True(t, doc.Find("html").HasClass(DarkClass))
	assert.True(t, doc.Find("body").HasClass(DarkClass))
	assert.True(t, doc.Find("html").HasClass("h-full"))

	c.Apply(doc)
	class, _ := doc.Find("html").Attr("class")
	assert.Equal(t, 1, strings.Count(class, DarkClass))

	_, err = c.Toggle()
	require.NoError(t, err)
	c.Apply(doc)
	assert.False(t, doc.Find("html").HasClass(DarkClass))
	assert.False(t, doc.Find("body").HasClass(DarkClass))
	assert.True(t, doc.Find("body").HasClass("antialiased"))

	assert.NotPanics(t, func() { c.Apply(nil) })
}

func TestParse(t *testing.T) {
	v, err := Parse("dark")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Parse("light")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = Parse("sepia")
	assert.Error(t, err)
}
