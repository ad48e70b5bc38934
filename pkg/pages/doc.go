// Package pages assembles the leaf components from package ui into screens.
//
// Pages take every input explicitly: the style table, the clock and any
// callbacks arrive through props, never through package state. A Registry
// maps request paths to page builders for the server and the exporter.
package pages
