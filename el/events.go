package el

import "github.com/vango-dev/dailycontents/pkg/vdom"

// Event handler constructors. Handlers are zero-argument callbacks.
var (
	OnClick  = vdom.OnClick
	OnSubmit = vdom.OnSubmit
)
