package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// Diff compares two VNode trees and returns the patches needed to transform
// prev into next. Children are matched by position; keys are not used since
// views in this module never reorder siblings.
//
// HIDs are carried from prev to next so handlers stay addressable. Live
// replies send the patch count and the re-rendered HTML; the patches
// themselves are logged at debug level by the server.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// Equal reports whether two trees are structurally identical: same kinds,
// tags, attributes, text and children, and handlers registered for the same
// events. Handler identity is not compared because funcs are not comparable.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text || a.Key != b.Key {
		return false
	}
	if len(a.Props) != len(b.Props) || len(a.Children) != len(b.Children) {
		return false
	}
	for key, av := range a.Props {
		bv, ok := b.Props[key]
		if !ok {
			return false
		}
		if IsEventKey(key) {
			if (av == nil) != (bv == nil) {
				return false
			}
			continue
		}
		if !propsEqual(av, bv) {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// diff recursively compares nodes and appends patches.
// parentHID is the HID of the nearest addressable ancestor.
func diff(prev, next *VNode, parentHID string, patches *[]Patch) {
	if prev == nil && next == nil {
		return
	}
	if prev == nil {
		*patches = append(*patches, Patch{Op: PatchInsertNode, ParentID: parentHID, Node: next})
		return
	}
	if next == nil {
		*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: prev.HID, ParentID: parentHID})
		return
	}

	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		*patches = append(*patches, Patch{Op: PatchReplaceNode, HID: prev.HID, ParentID: parentHID, Node: next})
		return
	}

	next.HID = prev.HID
	target := prev.HID
	if target == "" {
		target = parentHID
	}

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchSetText, HID: target, Value: next.Text})
		}
	case KindRaw:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchReplaceNode, HID: target, Node: next})
		}
	case KindElement:
		diffProps(prev, next, patches)
		diffChildren(prev.Children, next.Children, target, patches)
	case KindFragment:
		diffChildren(prev.Children, next.Children, target, patches)
	case KindComponent:
		if prev.Comp != nil && next.Comp != nil {
			diff(prev.Comp.Render(), next.Comp.Render(), target, patches)
		}
	}
}

// diffProps compares and patches attributes. Event handlers are skipped:
// the live session rebinds them from the new tree.
func diffProps(prev, next *VNode, patches *[]Patch) {
	for key, prevVal := range prev.Props {
		if IsEventKey(key) {
			continue
		}
		nextVal, exists := next.Props[key]
		if !exists {
			*patches = append(*patches, Patch{Op: PatchRemoveAttr, HID: prev.HID, Key: key})
		} else if !propsEqual(prevVal, nextVal) {
			*patches = append(*patches, Patch{Op: PatchSetAttr, HID: prev.HID, Key: key, Value: propToString(nextVal)})
		}
	}
	for key, nextVal := range next.Props {
		if IsEventKey(key) {
			continue
		}
		if _, exists := prev.Props[key]; !exists {
			*patches = append(*patches, Patch{Op: PatchSetAttr, HID: prev.HID, Key: key, Value: propToString(nextVal)})
		}
	}
}

func diffChildren(prev, next []*VNode, parentHID string, patches *[]Patch) {
	n := len(prev)
	if len(next) > n {
		n = len(next)
	}
	for i := 0; i < n; i++ {
		var p, c *VNode
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(next) {
			c = next[i]
		}
		if p == nil && c != nil {
			*patches = append(*patches, Patch{Op: PatchInsertNode, ParentID: parentHID, Index: i, Node: c})
			continue
		}
		diff(p, c, parentHID, patches)
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to a string for the patch.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
