// Package vdom provides the virtual DOM used by the Daily Contents views.
//
// Components build VNode trees with variadic element constructors:
//
//	Div(Class("card"),
//	    H2(Text("Title")),
//	    Button(Type("button"), OnClick(handler), Text("Save")),
//	)
//
// Event handlers live in Props under "on<event>" keys. AssignHIDs gives
// every interactive element a hydration ID so a live connection can route
// an activation back to the handler that rendered it. Diff compares two
// renders of the same view and returns the patches a client needs.
package vdom
