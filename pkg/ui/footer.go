package ui

import (
	"fmt"
	"time"

	"github.com/vango-dev/dailycontents/el"
)

const DefaultFooterStyles = "bg-gray-800 text-white text-center py-4 mt-auto"

// FooterProps configures Footer.
type FooterProps struct {
	// Owner defaults to DefaultBrand.
	Owner string

	// Now is read on every render. Nil means time.Now.
	Now func() time.Time

	Styles string
}

// Footer renders the copyright footer. The year comes from the clock at
// render time and is never cached.
func Footer(p FooterProps) *el.VNode {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	return el.Footer(el.Class(orDefault(p.Styles, DefaultFooterStyles)),
		el.P(el.Text(CopyrightLine(now().Year(), orDefault(p.Owner, DefaultBrand)))),
	)
}

// CopyrightLine formats the footer text.
func CopyrightLine(year int, owner string) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", year, owner)
}
