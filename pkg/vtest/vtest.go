package vtest

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/dailycontents/pkg/render"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string.
// Rendering errors produce an empty string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// FindOne returns the only element with tag, failing the test otherwise.
func FindOne(t testing.TB, node *vdom.VNode, tag string) *vdom.VNode {
	t.Helper()
	found := vdom.FindAll(node, tag)
	if len(found) != 1 {
		t.Fatalf("expected exactly one <%s>, found %d", tag, len(found))
	}
	return found[0]
}

// ExpectIdempotent renders build twice and asserts both trees and both
// HTML outputs are identical.
func ExpectIdempotent(t testing.TB, build func() *vdom.VNode) {
	t.Helper()
	first, second := build(), build()
	if !vdom.Equal(first, second) {
		t.Errorf("two renders produced different trees")
	}
	if a, b := RenderToString(build()), RenderToString(build()); a != b {
		t.Errorf("two renders produced different HTML:\n%s\n---\n%s", truncate(a, 300), truncate(b, 300))
	}
}

// FixedClock returns a clock that always reports the given time.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// YearClock returns a clock fixed at noon on 1 June of year, UTC.
func YearClock(year int) func() time.Time {
	return FixedClock(time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC))
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
