// Package render provides server-side rendering of vdom trees to HTML.
//
// It handles:
//
//   - element rendering with void element support
//   - text and attribute escaping
//   - boolean attributes (disabled, hidden, ...)
//   - hydration IDs for elements with event handlers
//   - full documents with DOCTYPE, head and the live client script
//   - optional sanitising of Raw nodes through a bluemonday policy
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Body:  pages.Landing(pages.DefaultStyleTable()),
//	    Title: "Landing",
//	})
//
// # Hydration IDs
//
// Elements with event handlers receive a data-hid attribute and one
// data-on-<event> marker per handler. Handlers are collected during
// rendering and can be retrieved via Handlers().
package render
