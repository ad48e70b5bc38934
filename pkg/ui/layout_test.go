package ui

import (
	"testing"
	"time"

	"github.com/vango-dev/dailycontents/pkg/vdom"
	"github.com/vango-dev/dailycontents/pkg/vtest"
)

func TestCardDefaultsAndOverrides(t *testing.T) {
	card := Card(CardProps{})
	vtest.ExpectContains(t, card, DefaultCardTitle)
	vtest.ExpectContains(t, card, DefaultCardContent)
	vtest.ExpectAttribute(t, card, "class", DefaultCardStyles)

	custom := Card(CardProps{Title: "T", Content: "C", Styles: "p-2"})
	vtest.ExpectContains(t, custom, "<h2 class=\"text-lg font-semibold\">T</h2>")
	vtest.ExpectAttribute(t, custom, "class", "p-2")
}

func TestHeader(t *testing.T) {
	header := Header(HeaderProps{Current: "/users"})
	vtest.ExpectContains(t, header, DefaultBrand)

	links := vdom.FindAll(header, "a")
	if len(links) != 3 {
		t.Fatalf("links = %d, want brand + 2 nav", len(links))
	}
	if links[2].StringProp("aria-current") != "page" {
		t.Error("users link should be current")
	}
	if links[1].StringProp("aria-current") != "" {
		t.Error("home link should not be current")
	}

	custom := Header(HeaderProps{Brand: "B", Links: []NavLink{}, Styles: "p-1"})
	if got := len(vdom.FindAll(custom, "a")); got != 1 {
		t.Errorf("empty Links should render only the brand, got %d links", got)
	}
}

func TestFooterYearFollowsClock(t *testing.T) {
	a := Footer(FooterProps{Now: vtest.YearClock(2024)})
	b := Footer(FooterProps{Now: vtest.YearClock(2025)})

	if got := a.TextContent(); got != "© 2024 Daily Contents. All rights reserved." {
		t.Errorf("2024 footer = %q", got)
	}
	if got := b.TextContent(); got != "© 2025 Daily Contents. All rights reserved." {
		t.Errorf("2025 footer = %q", got)
	}
	if vdom.Equal(a, b) {
		t.Error("footers for different years must differ")
	}
}

func TestFooterReadsClockOnEveryRender(t *testing.T) {
	year := 2030
	reads := 0
	props := FooterProps{Owner: "Acme", Now: func() time.Time {
		reads++
		return vtest.YearClock(year)()
	}}

	first := Footer(props).TextContent()
	year = 2031
	second := Footer(props).TextContent()

	if reads != 2 {
		t.Errorf("clock read %d times, want 2", reads)
	}
	if first == second {
		t.Errorf("year change not reflected: %q", second)
	}
	if second != CopyrightLine(2031, "Acme") {
		t.Errorf("second = %q", second)
	}
}

func TestFooterDefaultClock(t *testing.T) {
	vtest.ExpectContains(t, Footer(FooterProps{}), "All rights reserved.")
}

func TestLeafComponentsIdempotent(t *testing.T) {
	clock := vtest.YearClock(2026)
	vtest.ExpectIdempotent(t, func() *vdom.VNode { return Card(CardProps{}) })
	vtest.ExpectIdempotent(t, func() *vdom.VNode { return Header(HeaderProps{Current: "/"}) })
	vtest.ExpectIdempotent(t, func() *vdom.VNode { return Footer(FooterProps{Now: clock}) })
}
