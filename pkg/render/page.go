package render

import (
	"io"

	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// RootID is the id of the element wrapping the page body. The live client
// swaps its contents when a re-render changes the tree.
const RootID = "app"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains extra meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts contains script tags to include at the end of the body.
	Scripts []ScriptTag

	// ClientScript is the path to the live client. Empty disables it, which
	// is what static export wants.
	ClientScript string

	// LiveURL is the WebSocket endpoint handed to the live client.
	LiveURL string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string
	Content string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Defer  bool
	Inline string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	sw := &stickyWriter{w: w}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	sw.WriteString("<!DOCTYPE html>\n")
	sw.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderHead(sw, page)
	sw.WriteString("<body>\n")
	sw.WriteString(`<div id="` + RootID + `">`)

	if err := r.renderNode(sw, page.Body, 0); err != nil {
		return err
	}

	sw.WriteString("</div>\n")
	for _, script := range page.Scripts {
		r.renderScriptTag(sw, script)
	}
	if page.ClientScript != "" {
		sw.WriteString(`<script src="` + escapeAttr(page.ClientScript) + `" data-live="` +
			escapeAttr(page.LiveURL) + `" defer></script>` + "\n")
	}
	sw.WriteString("</body>\n</html>\n")
	return sw.err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w *stickyWriter, page PageData) {
	w.WriteString("<head>\n")
	w.WriteString(`  <meta charset="utf-8">` + "\n")
	w.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		w.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	for _, meta := range page.Meta {
		w.WriteString(`  <meta name="` + escapeAttr(meta.Name) + `" content="` + escapeAttr(meta.Content) + `">` + "\n")
	}
	for _, href := range page.StyleSheets {
		w.WriteString(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}
	w.WriteString("</head>\n")
}

// renderScriptTag renders a script element.
func (r *Renderer) renderScriptTag(w *stickyWriter, script ScriptTag) {
	w.WriteString("<script")
	if script.Src != "" {
		w.WriteString(` src="` + escapeAttr(script.Src) + `"`)
	}
	if script.Defer {
		w.WriteString(" defer")
	}
	w.WriteString(">")
	w.WriteString(script.Inline)
	w.WriteString("</script>\n")
}
