package el

import "github.com/vango-dev/dailycontents/pkg/vdom"

var (
	Text     = vdom.Text
	Raw      = vdom.Raw
	Fragment = vdom.Fragment
	Func     = vdom.Func
)

// Range maps items to nodes. Generic functions cannot be re-exported as
// variables.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return vdom.Range(items, fn)
}
