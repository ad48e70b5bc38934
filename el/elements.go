package el

import "github.com/vango-dev/dailycontents/pkg/vdom"

// IsVoidElement reports whether tag never has children.
var IsVoidElement = vdom.IsVoidElement

// Element constructors.
var (
	Html    = vdom.Html
	Head    = vdom.Head
	Body    = vdom.Body
	Title   = vdom.Title
	Meta    = vdom.Meta
	Link    = vdom.Link
	Header  = vdom.Header
	Footer  = vdom.Footer
	Main    = vdom.Main
	Nav     = vdom.Nav
	Section = vdom.Section
	H1      = vdom.H1
	H2      = vdom.H2
	H3      = vdom.H3
	Div     = vdom.Div
	P       = vdom.P
	Span    = vdom.Span
	Ul      = vdom.Ul
	Li      = vdom.Li
	Hr      = vdom.Hr
	Br      = vdom.Br
	A       = vdom.A
	Form    = vdom.Form
	Input   = vdom.Input
	Button  = vdom.Button
	Script  = vdom.Script
)
