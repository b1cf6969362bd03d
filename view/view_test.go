package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/seo"
)

const baseTitle = "Jane Doe - Full Stack Developer & Tech Blogger"

func testBase(origin string) seo.Descriptor {
	return BaseDescriptor(baseTitle, "Portfolio and blog of Jane Doe.", "go, web", "Jane Doe", origin)
}

func TestDescriptorPerSection(t *testing.T) {
	desc := DefaultDescriptions()
	c := NewController(testBase("https://jane.dev"), "https://jane.dev", nil)

	for _, s := range Sections() {
		require.NoError(t, c.SetSection(s))
		d := c.Descriptor()
		assert.Equal(t, s.Label()+" - "+baseTitle, d.Title, s)
		assert.Equal(t, desc[s], d.Description, s)
		assert.Equal(t, "https://jane.dev/#"+string(s), d.URL, s)

		assert.Equal(t, "go, web", d.Keywords)
		assert.Equal(t, "Jane Doe", d.Author)
		assert.Equal(t, "https://jane.dev/og-image.jpg", d.Image)
		assert.Equal(t, "website", d.Type)
	}
}

func TestDescriptorWithoutOrigin(t *testing.T) {
	c := NewController(testBase(""), "", nil)
	d := c.Descriptor()

	assert.Equal(t, "/#about", d.URL)
	assert.Empty(t, d.Image)
}

func TestDefaultSectionIsAbout(t *testing.T) {
	c := NewController(testBase("https://jane.dev"), "https://jane.dev/", nil)
	assert.Equal(t, About, c.Active())
	assert.Equal(t, "https://jane.dev", c.Origin())
	assert.Equal(t, "https://jane.dev/#about", c.Descriptor().URL)
}

func TestSetSectionRejectsUnknown(t *testing.T) {
	c := NewController(testBase("https://jane.dev"), "https://jane.dev", nil)
	require.NoError(t, c.SetSection(Blog))

	err := c.SetSection(Section("resume"))
	assert.True(t, errors.Is(err, ErrInvalidSection))
	assert.Equal(t, Blog, c.Active())
}

func TestDescribeFallsBackToAbout(t *testing.T) {
	base := testBase("https://jane.dev")
	d := Describe(base, "https://jane.dev", DefaultDescriptions(), Section("nope"))
	assert.Equal(t, "About - "+baseTitle, d.Title)
	assert.Equal(t, "https://jane.dev/#about", d.URL)
}

func TestOnChangeRunsOnEveryTransition(t *testing.T) {
	c := NewController(testBase("https://jane.dev"), "https://jane.dev", nil)
	var got []string
	c.OnChange(func(d seo.Descriptor) { got = append(got, d.URL) })

	require.NoError(t, c.SetSection(Projects))
	require.NoError(t, c.SetSection(Projects))
	require.NoError(t, c.SetSection(Contact))
	_ = c.SetSection(Section("bad"))

	assert.Equal(t, []string{
		"https://jane.dev/#projects",
		"https://jane.dev/#projects",
		"https://jane.dev/#contact",
	}, got)
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		input   string
		want    Section
		wantErr bool
	}{
		{"about", About, false},
		{" Blog ", Blog, false},
		{"CONTACT", Contact, false},
		{"", "", true},
		{"resume", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSection(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidSection, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestDescriptionsMerge(t *testing.T) {
	base := DefaultDescriptions()
	merged := base.Merge(map[Section]string{Blog: "Custom", Section("x"): "ignored", About: ""})

	assert.Equal(t, "Custom", merged[Blog])
	assert.Equal(t, base[About], merged[About])
	assert.NotContains(t, merged, Section("x"))
	assert.NotEqual(t, "Custom", base[Blog])
}
