package export

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/dailycontents/internal/errors"
	"github.com/vango-dev/dailycontents/pkg/middleware"
	"github.com/vango-dev/dailycontents/pkg/pages"
	"github.com/vango-dev/dailycontents/pkg/render"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// ContentType is the content type of exported documents.
const ContentType = "text/html; charset=utf-8"

// Options configures an Exporter.
type Options struct {
	// Registry lists the pages to export. Nil means pages.DefaultRegistry().
	Registry *pages.Registry

	// Render configures the HTML renderer.
	Render render.RendererConfig

	// Lang, Owner, Scripts and StyleSheets are applied to every document.
	Lang        string
	Owner       string
	Scripts     []string
	StyleSheets []string

	// Styles is passed to pages. Nil means pages.DefaultStyleTable().
	Styles *pages.StyleTable

	// Now is the clock passed to pages. Nil means time.Now.
	Now func() time.Time

	// Middleware wraps every page render.
	Middleware []middleware.Middleware

	Logger *slog.Logger
}

// Exporter renders registered pages to static documents.
type Exporter struct {
	opts   Options
	styles pages.StyleTable
	logger *slog.Logger
}

// File describes one exported document.
type File struct {
	Page     string
	Key      string
	Location string
	Bytes    int
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	if opts.Registry == nil {
		opts.Registry = pages.DefaultRegistry()
	}
	styles := pages.DefaultStyleTable()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{opts: opts, styles: styles, logger: logger.With("component", "export")}
}

// Render renders the page registered at path to a complete document.
func (e *Exporter) Render(ctx context.Context, path string) ([]byte, error) {
	page, ok := e.opts.Registry.Lookup(path)
	if !ok {
		return nil, errors.New("E204").WithDetail("No page is registered at " + path)
	}
	return e.render(ctx, page)
}

func (e *Exporter) render(ctx context.Context, page pages.Page) ([]byte, error) {
	var buf bytes.Buffer
	op := &middleware.Op{Ctx: ctx, Kind: middleware.OpRender, Page: page.Path}
	err := middleware.Run(op, func() error {
		tree := page.Render(pages.Env{Styles: e.styles, Now: e.opts.Now, Owner: e.opts.Owner})
		return render.NewRenderer(e.opts.Render).RenderPage(&buf, e.document(page, tree))
	}, e.opts.Middleware...)
	if err != nil {
		return nil, errors.New("E200").WithDetail("Rendering " + page.Path + " failed").Wrap(err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) document(page pages.Page, body *vdom.VNode) render.PageData {
	data := render.PageData{
		Body:        body,
		Title:       page.Title,
		Lang:        e.opts.Lang,
		StyleSheets: e.opts.StyleSheets,
	}
	for _, src := range e.opts.Scripts {
		data.Scripts = append(data.Scripts, render.ScriptTag{Src: src})
	}
	return data
}

// Export renders every page and writes it to store. It stops at the first
// failure and returns the files written so far.
func (e *Exporter) Export(ctx context.Context, store Store) ([]File, error) {
	if store == nil {
		return nil, errors.New("E203")
	}

	var files []File
	for _, page := range e.opts.Registry.Pages() {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		body, err := e.render(ctx, page)
		if err != nil {
			return files, err
		}

		key := KeyFor(page.Path)
		if err := store.Put(ctx, key, body, ContentType); err != nil {
			return files, err
		}

		f := File{Page: page.Path, Key: key, Location: store.Location(key), Bytes: len(body)}
		e.logger.Info("page exported", "page", f.Page, "location", f.Location, "bytes", f.Bytes)
		files = append(files, f)
	}
	return files, nil
}

// KeyFor maps a page path to its document key.
func KeyFor(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}
