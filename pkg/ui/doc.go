// Package ui contains the leaf view components: Button, Card, Header and
// Footer.
//
// Every component is a pure function from a props struct to a vdom tree.
// Zero-valued props fields select the documented defaults, so
//
//	ui.Button(ui.ButtonProps{Label: "Save"})
//
// renders a default-styled <button type="button"> with no handler.
package ui
