package folio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/eringen/folio/log"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/view"
	"github.com/eringen/folio/views"
)

// Export writes a static build of the site to dir. One page is mounted and
// walked through every section; each section is written while the page is
// mounted, and the page is unmounted at the end. It returns the paths written,
// relative to dir.
func (a *App) Export(ctx context.Context, dir string, th *theme.Controller) ([]string, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	out := &afero.Afero{Fs: afero.NewBasePathFs(afero.NewOsFs(), dir)}

	data, err := a.PageData(view.Default, "")
	if err != nil {
		return nil, err
	}
	data.Static = true
	data.Posts = staticPosts(data.Posts)

	p, err := a.NewPage(ctx, data, th)
	if err != nil {
		return nil, err
	}
	defer p.Unmount()

	var written []string
	write := func(name string, b []byte) error {
		if err := writeFile(out, name, b); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	}

	for _, s := range view.Sections() {
		if err := p.Select(ctx, s); err != nil {
			return nil, err
		}
		out, err := p.HTML()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", s, err)
		}
		if err := write(sectionFile(s), []byte(out)); err != nil {
			return nil, err
		}
		log.S().Debugw("exported section", "section", s)
	}

	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeXML(&buf, a.sitemap(posts, views.StaticHref)); err != nil {
		return nil, err
	}
	if err := write("sitemap.xml", buf.Bytes()); err != nil {
		return nil, err
	}
	buf.Reset()
	if err := writeXML(&buf, a.feed(posts, views.StaticHref)); err != nil {
		return nil, err
	}
	if err := write("feed.xml", buf.Bytes()); err != nil {
		return nil, err
	}
	if err := write("robots.txt", []byte(a.robots())); err != nil {
		return nil, err
	}

	og, err := a.OGImage.Bytes(a.Content.Profile)
	if err != nil {
		return nil, err
	}
	if err := write("og-image.jpg", og); err != nil {
		return nil, err
	}

	for name, target := range map[string]string{
		"favicon.svg": "favicon.svg",
		"site.css":    "public/site.css",
		"theme.js":    "public/theme.js",
	} {
		b, err := a.asset(name)
		if err != nil {
			return nil, fmt.Errorf("read asset %s: %w", name, err)
		}
		if err := write(target, b); err != nil {
			return nil, err
		}
	}

	if err := a.copyStatic(out, &written); err != nil {
		return nil, err
	}
	return written, nil
}

func sectionFile(s view.Section) string {
	if s == view.Default {
		return "index.html"
	}
	return string(s) + "/index.html"
}

// staticPosts links every preview to its card on the exported blog page.
func staticPosts(posts []BlogPost) []BlogPost {
	out := make([]BlogPost, len(posts))
	for i, p := range posts {
		p.Link = views.StaticHref(view.Blog) + "#" + p.Slug
		out[i] = p
	}
	return out
}

func writeFile(out *afero.Afero, name string, b []byte) error {
	path := filepath.FromSlash(name)
	if err := out.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := out.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// copyStatic copies the user's static dir to public/ in out, skipping files
// the export already wrote.
func (a *App) copyStatic(out *afero.Afero, written *[]string) error {
	if _, err := os.Stat(a.Config.StaticDir); os.IsNotExist(err) {
		return nil
	}
	src := &afero.Afero{Fs: afero.NewBasePathFs(afero.NewOsFs(), a.Config.StaticDir)}
	have := make(map[string]struct{}, len(*written))
	for _, w := range *written {
		have[w] = struct{}{}
	}
	return src.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		name := "public/" + filepath.ToSlash(path)
		if _, ok := have[name]; ok {
			return nil
		}
		b, err := src.ReadFile(path)
		if err != nil {
			return err
		}
		if err := writeFile(out, name, b); err != nil {
			return err
		}
		*written = append(*written, name)
		return nil
	})
}
