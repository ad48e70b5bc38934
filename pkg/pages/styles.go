package pages

import "strings"

// Size is a named display-scale tier.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// StyleTable maps size tiers and shape positions to utility classes.
// It is immutable once built; accessors return copies.
type StyleTable struct {
	sizes  map[Size]string
	shapes []string
}

// NewStyleTable builds a table from the given size and shape tokens.
// The inputs are copied.
func NewStyleTable(sizes map[Size]string, shapes []string) StyleTable {
	t := StyleTable{
		sizes:  make(map[Size]string, len(sizes)),
		shapes: append([]string(nil), shapes...),
	}
	for k, v := range sizes {
		t.sizes[k] = v
	}
	return t
}

// DefaultStyleTable returns the landing page's size and shape tokens.
func DefaultStyleTable() StyleTable {
	return NewStyleTable(
		map[Size]string{
			SizeSmall:  "text-sm",
			SizeMedium: "text-base",
			SizeLarge:  "text-lg",
		},
		[]string{"rounded-sm", "rounded-md", "rounded-lg", "rounded-full"},
	)
}

// Size returns the token for a tier, or "" for an unknown tier.
func (t StyleTable) Size(s Size) string {
	return t.sizes[s]
}

// Shape returns the shape token at position i, or "" when out of range.
func (t StyleTable) Shape(i int) string {
	if i < 0 || i >= len(t.shapes) {
		return ""
	}
	return t.shapes[i]
}

// Shapes returns a copy of the ordered shape tokens.
func (t StyleTable) Shapes() []string {
	return append([]string(nil), t.shapes...)
}

// Compose joins the size token, the shape token and any extra classes with
// single spaces. Unknown tiers and out-of-range shapes contribute nothing;
// no other validation is done.
func (t StyleTable) Compose(size Size, shape int, extra ...string) string {
	parts := make([]string, 0, 2+len(extra))
	for _, p := range append([]string{t.Size(size), t.Shape(shape)}, extra...) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
