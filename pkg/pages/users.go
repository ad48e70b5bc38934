package pages

import (
	"time"

	. "github.com/vango-dev/dailycontents/el"
	"github.com/vango-dev/dailycontents/pkg/ui"
)

const addUserStyles = "bg-blue-700 px-4 py-2 rounded-full text-white"

// UsersProps configures Users.
type UsersProps struct {
	// OnAddUser handles the "Add User" button. Nil leaves the button inert.
	OnAddUser func()

	Now   func() time.Time
	Owner string
}

// Users renders the users index inside the site layout.
func Users(p UsersProps) *VNode {
	return Layout(LayoutProps{Current: "/users", Now: p.Now, Owner: p.Owner},
		Div(Class("p-4"),
			Div(Class("flex justify-between"),
				H1(Class("text-2xl font-semibold"), Text("Users")),
				ui.Button(ui.ButtonProps{Label: "Add User", Styles: addUserStyles, OnClick: p.OnAddUser}),
			),
			Div(Class("grid grid-cols-3 gap-2"),
				P(Class("text-gray-500"), Text("User list goes here.")),
			),
		),
	)
}
