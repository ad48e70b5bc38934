package ui

import "github.com/vango-dev/dailycontents/el"

const (
	DefaultCardStyles  = "border rounded-lg p-4 m-4 shadow-md"
	DefaultCardTitle   = "Card Title"
	DefaultCardContent = "This is a simple card component."
)

// CardProps configures Card. Empty fields select the defaults above.
type CardProps struct {
	Title   string
	Content string
	Styles  string
}

// Card renders a bordered content block.
func Card(p CardProps) *el.VNode {
	return el.Div(el.Class(orDefault(p.Styles, DefaultCardStyles)),
		el.H2(el.Class("text-lg font-semibold"), el.Text(orDefault(p.Title, DefaultCardTitle))),
		el.P(el.Class("text-gray-600"), el.Text(orDefault(p.Content, DefaultCardContent))),
	)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
