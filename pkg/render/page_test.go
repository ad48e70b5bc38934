package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/dailycontents/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	var buf bytes.Buffer

	err := renderer.RenderPage(&buf, PageData{
		Body:         vdom.H1(vdom.Text("Users")),
		Title:        "Users & Co",
		Meta:         []MetaTag{{Name: "description", Content: "list"}},
		StyleSheets:  []string{"/styles.css"},
		ClientScript: "/_live/client.js",
		LiveURL:      "/_live?page=%2Fusers",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		"<title>Users &amp; Co</title>",
		`<meta name="description" content="list">`,
		`<link rel="stylesheet" href="/styles.css">`,
		`<div id="app"><h1>Users</h1></div>`,
		`<script src="/_live/client.js" data-live="/_live?page=%2Fusers" defer></script>`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}

func TestRenderPageWithoutClient(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	var buf bytes.Buffer

	err := renderer.RenderPage(&buf, PageData{
		Body:    vdom.P(vdom.Text("static")),
		Lang:    "fr",
		Scripts: []ScriptTag{{Inline: "console.log(1)"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `<html lang="fr">`) {
		t.Error("lang not applied")
	}
	if strings.Contains(html, "data-live") {
		t.Error("client script should be omitted")
	}
	if !strings.Contains(html, "<script>console.log(1)</script>") {
		t.Error("inline script missing")
	}
}
