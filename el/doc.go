// Package el provides the view DSL used by the Daily Contents components.
//
// It re-exports the element constructors, attribute and event helpers and
// node helpers from pkg/vdom so views can dot-import a single package:
//
//	import . "github.com/vango-dev/dailycontents/el"
//
//	func Badge(label string) *VNode {
//	    return Span(Class("px-2 rounded-full bg-gray-100"), Text(label))
//	}
package el
