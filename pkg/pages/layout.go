package pages

import (
	"time"

	. "github.com/vango-dev/dailycontents/el"
	"github.com/vango-dev/dailycontents/pkg/ui"
)

// LayoutProps configures Layout.
type LayoutProps struct {
	// Current is the active path, highlighted in the header.
	Current string

	// Now is passed to the footer. Nil means time.Now.
	Now func() time.Time

	// Owner is the copyright holder. Empty means the footer default.
	Owner string
}

// Layout wraps page content with the site header and footer.
func Layout(p LayoutProps, children ...any) *VNode {
	return Div(Class("flex flex-col min-h-screen"),
		ui.Header(ui.HeaderProps{Current: p.Current}),
		Main(append([]any{Class("flex-grow")}, children...)...),
		ui.Footer(ui.FooterProps{Now: p.Now, Owner: p.Owner}),
	)
}
