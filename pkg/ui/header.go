package ui

import "github.com/vango-dev/dailycontents/el"

const (
	DefaultBrand        = "Daily Contents"
	DefaultHeaderStyles = "bg-gray-800 text-white p-4"
)

// NavLink is a header navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// DefaultNavLinks returns the links shown when HeaderProps.Links is nil.
func DefaultNavLinks() []NavLink {
	return []NavLink{
		{Label: "Home", Href: "/"},
		{Label: "Users", Href: "/users"},
	}
}

// HeaderProps configures Header.
type HeaderProps struct {
	Brand string
	Links []NavLink

	// Current is the path of the active page; its link gets aria-current.
	Current string

	Styles string
}

// Header renders the site header with brand and navigation.
func Header(p HeaderProps) *el.VNode {
	links := p.Links
	if links == nil {
		links = DefaultNavLinks()
	}

	return el.Header(el.Class(orDefault(p.Styles, DefaultHeaderStyles)),
		el.Div(el.Class("flex justify-between items-center"),
			el.A(el.Href("/"), el.Class("text-xl font-bold"), el.Text(orDefault(p.Brand, DefaultBrand))),
			el.Nav(el.Class("flex gap-4"),
				el.Range(links, func(l NavLink, _ int) *el.VNode {
					var current any
					if p.Current != "" && l.Href == p.Current {
						current = el.AriaCurrent("page")
					}
					return el.A(el.Href(l.Href), el.Class("hover:underline"), current, el.Text(l.Label))
				}),
			),
		),
	)
}
