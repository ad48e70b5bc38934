package el

import "github.com/vango-dev/dailycontents/pkg/vdom"

// Attribute helpers.
var (
	Class       = vdom.Class
	Data        = vdom.Data
	Disabled    = vdom.Disabled
	ID          = vdom.ID
	StyleAttr   = vdom.StyleAttr
	Key         = vdom.Key
	AriaCurrent = vdom.AriaCurrent
	Href        = vdom.Href
	Rel         = vdom.Rel
	Src         = vdom.Src
	Alt         = vdom.Alt
	Type        = vdom.Type
	Name        = vdom.Name
	Value       = vdom.Value
	Lang        = vdom.Lang
	Charset     = vdom.Charset
	Content     = vdom.Content
)
