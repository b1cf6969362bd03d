package folio

import (
	"bytes"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/theme"
)

const testOrigin = "https://example.com"

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppIn(t, t.TempDir())
}

// newTestAppIn sets up an app whose database and static dir live in dir.
func newTestAppIn(t *testing.T, dir string) *App {
	t.Helper()
	a := New(SiteConfig{
		URL:           testOrigin,
		SessionSecret: "test-secret",
		DatabasePath:  filepath.Join(dir, "folio.db"),
		StaticDir:     filepath.Join(dir, "public"),
	})
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	return doc
}

func TestHomeRendersSyncedHead(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Accept-CH"); got != colorSchemeHint {
		t.Errorf("Accept-CH = %q", got)
	}

	doc := parseBody(t, rec)
	if got := seo.Title(doc); got != "About - Rohith Achar" {
		t.Errorf("title = %q", got)
	}
	if got, _ := seo.Canonical(doc); got != testOrigin+"/#about" {
		t.Errorf("canonical = %q", got)
	}
	if got, _ := seo.Meta(doc, "property", "og:image"); got != testOrigin+"/og-image.jpg" {
		t.Errorf("og:image = %q", got)
	}
	if n := len(seo.StructuredData(doc)); n != 2 {
		t.Errorf("expected 2 structured data blocks, got %d", n)
	}
	if n := doc.Find(`meta[name="description"]`).Length(); n != 1 {
		t.Errorf("expected 1 description, got %d", n)
	}
}

func TestHomeSelectsSection(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/?section=projects", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := parseBody(t, rec)
	if got := seo.Title(doc); got != "Projects - Rohith Achar" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("#panel #projects-heading").Length() != 1 {
		t.Error("projects panel not rendered")
	}
	if v, _ := doc.Find(`#sections a[aria-current="page"]`).Attr("data-section"); v != "projects" {
		t.Errorf("current nav = %q", v)
	}
}

func TestUnknownSectionIsNotFound(t *testing.T) {
	a := newTestApp(t)
	for _, target := range []string{"/?section=resume", "/section/resume/"} {
		rec := serve(a, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", target, rec.Code)
		}
	}
}

func TestSectionPartialForHTMX(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/section/blog/?tag=css", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(a, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<title>Blog - Rohith Achar</title>") {
		t.Errorf("partial should start with the title: %.80s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("partial should not contain the page shell")
	}
	if !strings.Contains(body, "CSS Grid vs Flexbox") || strings.Contains(body, "Docker Containers Explained") {
		t.Error("tag filter not applied")
	}
}

func TestSectionWithoutHTMXRendersFullPage(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/section/contact/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := parseBody(t, rec)
	if got := seo.Title(doc); got != "Contact - Rohith Achar" {
		t.Errorf("title = %q", got)
	}
}

func TestThemeRequiresCSRF(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader("section=about"))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	rec := serve(a, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/?section=projects", nil))
	doc := parseBody(t, rec)
	if doc.Find("html").HasClass("dark") {
		t.Fatal("default theme should be light")
	}
	token, _ := doc.Find(`form.theme-form input[name="_csrf"]`).Attr("value")
	if token == "" {
		t.Fatal("missing csrf token")
	}
	cookies := rec.Result().Cookies()

	form := url.Values{"_csrf": {token}, "section": {"projects"}}
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = serve(a, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?section=projects" {
		t.Errorf("Location = %q", loc)
	}

	req = httptest.NewRequest(http.MethodGet, "/?section=projects", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	doc = parseBody(t, serve(a, req))
	if !doc.Find("html").HasClass("dark") || !doc.Find("body").HasClass("dark") {
		t.Error("stored theme should render dark")
	}
	if label, _ := doc.Find("[data-theme-toggle]").Attr("aria-label"); label != "Switch to light mode" {
		t.Errorf("toggle label = %q", label)
	}
}

func TestThemeToggleReplacesUndecodableSession(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	token, _ := parseBody(t, rec).Find(`form.theme-form input[name="_csrf"]`).Attr("value")
	cookies := rec.Result().Cookies()

	// A visitor cookie signed with a secret the server no longer uses.
	old := sessions.NewCookieStore([]byte("old-secret"))
	oldReq := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := old.New(oldReq, visitorSession)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	sess.Values[theme.StorageKey] = "dark"
	oldRec := httptest.NewRecorder()
	if err := sess.Save(oldReq, oldRec); err != nil {
		t.Fatalf("save session: %v", err)
	}
	cookies = append(cookies, oldRec.Result().Cookies()...)

	form := url.Values{"_csrf": {token}, "section": {"about"}}
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = serve(a, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d, want 303", rec.Code)
	}

	var replaced *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitorSession {
			replaced = c
		}
	}
	if replaced == nil {
		t.Fatal("expected a replacement visitor cookie")
	}

	// The old cookie did not decode, so the toggle started from light.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(replaced)
	doc := parseBody(t, serve(a, req))
	if !doc.Find("html").HasClass("dark") {
		t.Error("replacement cookie should carry the dark theme")
	}
}

func TestNavigationWithoutHTMX(t *testing.T) {
	a := newTestApp(t)
	doc := parseBody(t, serve(a, httptest.NewRequest(http.MethodGet, "/", nil)))
	if doc.Find(`script[src="/public/htmx.min.js"]`).Length() != 0 {
		t.Error("htmx should not be loaded when the static dir lacks it")
	}
	if doc.Find("#sections a[hx-get]").Length() != 0 {
		t.Error("section links should load full pages")
	}
	if href, _ := doc.Find(`#sections a[data-section="blog"]`).Attr("href"); href != "/?section=blog" {
		t.Errorf("blog href = %q", href)
	}
}

func TestNavigationWithHTMX(t *testing.T) {
	dir := t.TempDir()
	static := filepath.Join(dir, "public")
	if err := os.MkdirAll(static, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, htmxScript), []byte("// htmx"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := newTestAppIn(t, dir)

	doc := parseBody(t, serve(a, httptest.NewRequest(http.MethodGet, "/", nil)))
	if doc.Find(`script[src="/public/htmx.min.js"]`).Length() != 1 {
		t.Error("htmx script missing")
	}
	if got, _ := doc.Find(`#sections a[data-section="blog"]`).Attr("hx-get"); got != "/section/blog/" {
		t.Errorf("hx-get = %q", got)
	}

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/public/htmx.min.js", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "// htmx" {
		t.Errorf("htmx asset: %d %q", rec.Code, rec.Body.String())
	}
}

func TestHomeHonoursClientHint(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(colorSchemeHint, `"dark"`)
	doc := parseBody(t, serve(a, req))
	if !doc.Find("html").HasClass("dark") {
		t.Error("client hint should select dark")
	}
}

func TestBlogPostRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/blog/css-grid-vs-flexbox/", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?section=blog#css-grid-vs-flexbox" {
		t.Errorf("Location = %q", loc)
	}

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/blog/missing/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d", rec.Code)
	}
}

func TestSEOEndpoints(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	body := rec.Body.String()
	if n := strings.Count(body, "<loc>"); n != 5 {
		t.Errorf("expected 5 sitemap urls, got %d", n)
	}
	if !strings.Contains(body, "<loc>"+testOrigin+"/?section=blog</loc>") {
		t.Errorf("blog url missing: %s", body)
	}

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))
	if n := strings.Count(rec.Body.String(), "<item>"); n != 4 {
		t.Errorf("expected 4 feed items, got %d", n)
	}

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	if !strings.Contains(rec.Body.String(), "Sitemap: "+testOrigin+"/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/favicon.svg", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "image/svg+xml") {
		t.Errorf("favicon: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestOGImageEndpoint(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/og-image.jpg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != OGWidth || b.Dy() != OGHeight {
		t.Errorf("size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestNotFoundPage(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, httptest.NewRequest(http.MethodGet, "/nope/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Error("404 page not rendered")
	}
}

func TestThemeToggleIsRateLimited(t *testing.T) {
	a := newTestApp(t)
	a.themeLimiter.Close()
	a.themeLimiter = NewLimiter(1, time.Minute)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	token, _ := parseBody(t, rec).Find(`form.theme-form input[name="_csrf"]`).Attr("value")
	cookies := rec.Result().Cookies()

	post := func() int {
		form := url.Values{"_csrf": {token}}
		req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, "application/x-www-form-urlencoded")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return serve(a, req).Code
	}
	if code := post(); code != http.StatusSeeOther {
		t.Fatalf("first toggle status = %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Errorf("second toggle status = %d, want 429", code)
	}
}
