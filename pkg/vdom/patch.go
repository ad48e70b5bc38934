package vdom

// PatchOp identifies what a Patch does to the rendered document.
type PatchOp uint8

const (
	PatchSetText PatchOp = iota + 1
	PatchSetAttr
	PatchRemoveAttr
	PatchInsertNode
	PatchRemoveNode
	PatchReplaceNode
)

var patchOpNames = [...]string{
	PatchSetText:     "SetText",
	PatchSetAttr:     "SetAttr",
	PatchRemoveAttr:  "RemoveAttr",
	PatchInsertNode:  "InsertNode",
	PatchRemoveNode:  "RemoveNode",
	PatchReplaceNode: "ReplaceNode",
}

func (op PatchOp) String() string {
	if int(op) < len(patchOpNames) && patchOpNames[op] != "" {
		return patchOpNames[op]
	}
	return "Unknown"
}

// Patch is one change between two renders of a page. HID names the target
// element, or the nearest element ancestor for text changes.
type Patch struct {
	Op  PatchOp
	HID string

	// Key is the attribute name for SetAttr and RemoveAttr.
	Key   string
	Value string

	// Node, ParentID and Index place inserted and replacement nodes.
	Node     *VNode
	ParentID string
	Index    int
}
