package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Raw creates an unescaped HTML node.
// The renderer can sanitise raw nodes; see render.RendererConfig.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(children))}
	for _, c := range children {
		node.Children = appendChild(node.Children, c)
	}
	return node
}

// appendChild appends child to dst. A child is a *VNode, a []*VNode, a
// string (becomes a text node) or a Component. Nil nodes and values of any
// other type are dropped.
func appendChild(dst []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case *VNode:
		if v != nil {
			dst = append(dst, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				dst = append(dst, c)
			}
		}
	case string:
		dst = append(dst, Text(v))
	case Component:
		dst = append(dst, &VNode{Kind: KindComponent, Comp: v})
	}
	return dst
}

// Range maps items to nodes, skipping nils.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}
