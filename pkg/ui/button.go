package ui

import (
	"github.com/vango-dev/dailycontents/el"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// ButtonType is the role tag of a button.
type ButtonType string

const (
	TypeButton ButtonType = "button"
	TypeSubmit ButtonType = "submit"
	TypeReset  ButtonType = "reset"
)

// Valid reports whether t is one of the recognised role tags.
func (t ButtonType) Valid() bool {
	switch t {
	case TypeButton, TypeSubmit, TypeReset:
		return true
	}
	return false
}

// DefaultButtonStyles is used when ButtonProps.Styles is empty.
const DefaultButtonStyles = "px-4 py-2 bg-blue-600 text-white rounded hover:bg-blue-700 transition"

// ButtonProps configures Button.
type ButtonProps struct {
	// Label is displayed verbatim.
	Label string

	// OnClick is invoked with no arguments on activation. Nil means the
	// button has no handler at all, which is not the same as a no-op func.
	OnClick func()

	// Type defaults to TypeButton. Unrecognised values also fall back to it.
	Type ButtonType

	// Styles replaces DefaultButtonStyles when non-empty.
	Styles string
}

// Button renders a single <button> showing the label.
func Button(p ButtonProps) *el.VNode {
	typ := p.Type
	if !typ.Valid() {
		typ = TypeButton
	}

	var click any
	if p.OnClick != nil {
		click = el.OnClick(p.OnClick)
	}

	return el.Button(
		el.Type(string(typ)),
		el.Class(orDefault(p.Styles, DefaultButtonStyles)),
		click,
		el.Text(p.Label),
	)
}

// DefaultAction is the platform behaviour a button falls back to when it
// has no click handler.
type DefaultAction string

const (
	DefaultNone   DefaultAction = ""
	DefaultSubmit DefaultAction = "submit"
	DefaultReset  DefaultAction = "reset"
)

// Activation is the outcome of activating a rendered button.
type Activation struct {
	// Invoked is true when the click handler ran.
	Invoked bool

	// Default is set only when no handler ran.
	Default DefaultAction
}

// Activate performs a user activation on a rendered node: the click handler
// runs once if present, otherwise the default implied by the button's role
// is reported. A missing handler is never an error.
func Activate(node *el.VNode) Activation {
	if node == nil {
		return Activation{}
	}
	if h, ok := node.Handler("click"); ok && vdom.Invoke(h) {
		return Activation{Invoked: true}
	}
	if node.Tag != "button" {
		return Activation{}
	}
	switch ButtonType(node.StringProp("type")) {
	case TypeSubmit:
		return Activation{Default: DefaultSubmit}
	case TypeReset:
		return Activation{Default: DefaultReset}
	}
	return Activation{}
}
