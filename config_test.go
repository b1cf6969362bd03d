package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/view"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabasePath != "data/folio.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.PostCacheTTL != 5*time.Minute {
		t.Errorf("PostCacheTTL = %v", cfg.PostCacheTTL)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("StaticDir = %q", cfg.StaticDir)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	yml := `name: My Folio
url: https://folio.example/
keywords: go, web
post_cache_ttl: 30s
prefer_dark: true
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_ADDR", ":8080")
	t.Setenv("FOLIO_NAME", "From Env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "From Env" {
		t.Errorf("env should override file, Name = %q", cfg.Name)
	}
	if cfg.URL != "https://folio.example" {
		t.Errorf("URL should lose its trailing slash, got %q", cfg.URL)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Keywords != "go, web" {
		t.Errorf("Keywords = %q", cfg.Keywords)
	}
	if cfg.PostCacheTTL != 30*time.Second {
		t.Errorf("PostCacheTTL = %v", cfg.PostCacheTTL)
	}
	if !cfg.PreferDark {
		t.Error("PreferDark should be true")
	}
}

func TestNewFillsSiteFromProfile(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "folio.db")})
	if err := a.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	if a.Config.Name != "Rohith Achar" || a.Config.Author != "Rohith Achar" {
		t.Errorf("name/author not taken from profile: %+v", a.Config)
	}
	if a.Config.Description == "" || a.Config.Keywords == "" {
		t.Errorf("description/keywords not taken from profile: %+v", a.Config)
	}
	// An unknown origin keeps the image empty.
	if d := a.BaseDescriptor(); d.Image != "" || d.URL != "" {
		t.Errorf("base descriptor without origin = %+v", d)
	}
}

func TestWithContent(t *testing.T) {
	c, err := content.Parse([]byte("profile:\n  name: Jane Doe\n  role: Engineer\ndescriptions:\n  projects: Things Jane built.\n  resume: ignored\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	a := New(SiteConfig{URL: "https://jane.example", DatabasePath: filepath.Join(t.TempDir(), "folio.db")}, WithContent(c))
	if err := a.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	d := a.Descriptor(view.Projects)
	if d.Title != "Projects - Jane Doe" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Description != "Things Jane built." {
		t.Errorf("description override not applied: %q", d.Description)
	}
	if d.URL != "https://jane.example/#projects" {
		t.Errorf("url = %q", d.URL)
	}
	if got := a.Descriptor(view.Blog).Description; got != view.DefaultDescriptions()[view.Blog] {
		t.Errorf("blog should keep the default description, got %q", got)
	}
}
