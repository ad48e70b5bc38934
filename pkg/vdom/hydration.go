package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for interactive elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// Expand replaces component nodes with their rendered output, recursively.
// The returned tree contains no KindComponent nodes.
func Expand(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindComponent {
		if node.Comp == nil {
			return nil
		}
		return Expand(node.Comp.Render())
	}
	if len(node.Children) == 0 {
		return node
	}
	children := make([]*VNode, 0, len(node.Children))
	for _, child := range node.Children {
		if c := Expand(child); c != nil {
			children = append(children, c)
		}
	}
	node.Children = children
	return node
}

// AssignHIDs walks the tree in document order and assigns HIDs to
// interactive elements (those with event handlers).
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}

	if node.Kind == KindElement && node.IsInteractive() {
		node.HID = gen.Next()
	}

	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	collectHIDs(node, result)
	return result
}

func collectHIDs(node *VNode, result map[string]*VNode) {
	if node == nil {
		return
	}
	if node.HID != "" {
		result[node.HID] = node
	}
	for _, child := range node.Children {
		collectHIDs(child, result)
	}
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	if node == nil || hid == "" {
		return nil
	}
	if node.HID == hid {
		return node
	}
	for _, child := range node.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element with the given tag, in document order.
func FindAll(node *VNode, tag string) []*VNode {
	var out []*VNode
	var walk func(n *VNode)
	walk = func(n *VNode) {
		if n == nil {
			return
		}
		if n.Kind == KindElement && n.Tag == tag {
			out = append(out, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(node)
	return out
}

// CountInteractive returns the number of interactive elements in the tree.
func CountInteractive(node *VNode) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.Kind == KindElement && node.IsInteractive() {
		count = 1
	}
	for _, child := range node.Children {
		count += CountInteractive(child)
	}
	return count
}
