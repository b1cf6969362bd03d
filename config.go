package folio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/folio/content"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. FOLIO_URL sets url.
const EnvPrefix = "FOLIO_"

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `koanf:"name"`        // Site name (default: profile name)
	URL         string `koanf:"url"`         // Canonical origin; empty means unknown
	Description string `koanf:"description"` // Site description for meta tags and RSS
	Author      string `koanf:"author"`      // Author name for meta tags and JSON-LD
	Keywords    string `koanf:"keywords"`    // Comma-separated keywords meta

	Addr          string `koanf:"addr"`           // Listen address (default ":3000")
	DatabasePath  string `koanf:"database_path"`  // SQLite path (default "data/folio.db")
	SessionSecret string `koanf:"session_secret"` // Required for serve: cookie signing secret
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	PostCacheTTL time.Duration `koanf:"post_cache_ttl"` // Blog preview cache TTL (default 5m)
	PreferDark   bool          `koanf:"prefer_dark"`    // Theme when neither storage nor client hint decide

	ContentPath   string `koanf:"content_path"`    // YAML content file; empty uses the built-in content
	StaticDir     string `koanf:"static_dir"`      // User static assets served under /public (default "public")
	OGSourceImage string `koanf:"og_source_image"` // Optional image scaled into /og-image.jpg
}

func (c *SiteConfig) setDefaults() {
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
}

// LoadConfig reads configuration from the YAML file at path, when it exists,
// then overlays FOLIO_* environment variables.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithContent uses c instead of loading ContentPath.
func WithContent(c *content.Content) Option {
	return func(a *App) {
		a.Content = c
	}
}
