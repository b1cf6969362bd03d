package folio

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/log"
	"github.com/eringen/folio/theme"
)

const (
	visitorSession = "folio_visitor"

	// colorSchemeHint is the client hint carrying the visitor's OS color scheme.
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// sessionStorage keeps theme values in the visitor's session cookie.
type sessionStorage struct {
	c echo.Context
}

func newSessionStorage(c echo.Context) *sessionStorage {
	return &sessionStorage{c: c}
}

// session returns the visitor session. A cookie that no longer decodes, for
// example after the secret was rotated, yields the fresh session gorilla
// hands back with the error, so the next Save replaces the bad cookie.
func (s *sessionStorage) session() (*sessions.Session, error) {
	sess, err := session.Get(visitorSession, s.c)
	if sess == nil {
		return nil, err
	}
	if err != nil {
		log.S().Debugw("discarding undecodable visitor session", "error", err)
	}
	return sess, nil
}

func (s *sessionStorage) Get(key string) (string, bool) {
	sess, err := s.session()
	if err != nil {
		return "", false
	}
	v, ok := sess.Values[key].(string)
	return v, ok
}

func (s *sessionStorage) Set(key, value string) error {
	sess, err := s.session()
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}

// SettingsStorage keeps theme values in the store's settings table. The
// export command and the theme CLI share it.
type SettingsStorage struct {
	store *Store
}

// NewSettingsStorage returns a theme.Storage backed by s.
func NewSettingsStorage(s *Store) *SettingsStorage {
	return &SettingsStorage{store: s}
}

func (s *SettingsStorage) Get(key string) (string, bool) {
	v, err := s.store.GetSetting(key)
	if err != nil {
		log.S().Warnw("read setting", "key", key, "error", err)
		return "", false
	}
	return v, v != ""
}

func (s *SettingsStorage) Set(key, value string) error {
	return s.store.SetSetting(key, value)
}

// clientHintPreference reads the visitor's OS color scheme from the client
// hint, falling back to fallback when the browser does not send it.
func clientHintPreference(r *http.Request, fallback bool) theme.Preference {
	return func() bool {
		switch strings.Trim(strings.ToLower(r.Header.Get(colorSchemeHint)), `" `) {
		case "dark":
			return true
		case "light":
			return false
		}
		return fallback
	}
}

// visitorTheme returns the theme controller for the requesting visitor.
func (a *App) visitorTheme(c echo.Context) *theme.Controller {
	return theme.New(newSessionStorage(c), clientHintPreference(c.Request(), a.Config.PreferDark))
}
