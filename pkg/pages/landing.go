package pages

import (
	. "github.com/vango-dev/dailycontents/el"
	"github.com/vango-dev/dailycontents/pkg/ui"
)

// LandingButtonLabel is the label shared by the three landing buttons.
const LandingButtonLabel = "Click Me"

// LandingButtonStyles derives the three landing button class strings.
func LandingButtonStyles(styles StyleTable) []string {
	return []string{
		styles.Compose(SizeSmall, 0, "bg-blue-500 text-white"),
		styles.Compose(SizeMedium, 1, "bg-green-500 text-white mt-2"),
		styles.Compose(SizeLarge, 2, "bg-red-500 text-white mt-2"),
	}
}

// Landing renders the landing page: a heading, a card and three buttons
// styled from the table.
func Landing(styles StyleTable) *VNode {
	return Div(
		H1(Class("text-xl font-extralight"), Text("Landing Page")),
		ui.Card(ui.CardProps{}),
		Div(Class("flex flex-col items-center mt-4"),
			Range(LandingButtonStyles(styles), func(s string, _ int) *VNode {
				return ui.Button(ui.ButtonProps{Label: LandingButtonLabel, Styles: s})
			}),
		),
	)
}
