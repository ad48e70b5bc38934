// Package vtest provides helpers for testing views.
//
// It renders trees to HTML for substring assertions, builds fixed clocks
// for time-dependent views and checks that a view renders the same way
// twice:
//
//	func TestBanner(t *testing.T) {
//	    vtest.ExpectContains(t, Banner(), "Welcome")
//	    vtest.ExpectIdempotent(t, Banner)
//	}
package vtest
