package pages

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// Env carries the inputs a page builder receives from its host.
type Env struct {
	Styles StyleTable
	Now    func() time.Time
	Owner  string

	// OnAddUser is forwarded to the users page.
	OnAddUser func()
}

// Page is a named, routable page builder.
type Page struct {
	Path  string
	Name  string
	Title string
	Build func(Env) *vdom.VNode
}

// Registry maps request paths to pages.
type Registry struct {
	byPath map[string]Page
}

// NewRegistry builds a registry. Paths must start with "/" and be unique.
func NewRegistry(pages ...Page) (*Registry, error) {
	r := &Registry{byPath: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if !strings.HasPrefix(p.Path, "/") {
			return nil, fmt.Errorf("pages: path %q must start with /", p.Path)
		}
		if p.Build == nil {
			return nil, fmt.Errorf("pages: page %q has no builder", p.Path)
		}
		if _, dup := r.byPath[p.Path]; dup {
			return nil, fmt.Errorf("pages: duplicate path %q", p.Path)
		}
		r.byPath[p.Path] = p
	}
	return r, nil
}

// DefaultRegistry returns the landing and users pages.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Page{
			Path:  "/",
			Name:  "landing",
			Title: "Landing Page",
			Build: func(env Env) *vdom.VNode { return Landing(env.Styles) },
		},
		Page{
			Path:  "/users",
			Name:  "users",
			Title: "Users",
			Build: func(env Env) *vdom.VNode {
				return Users(UsersProps{OnAddUser: env.OnAddUser, Now: env.Now, Owner: env.Owner})
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the page registered for path.
func (r *Registry) Lookup(path string) (Page, bool) {
	p, ok := r.byPath[path]
	return p, ok
}

// Pages returns all pages sorted by path.
func (r *Registry) Pages() []Page {
	out := make([]Page, 0, len(r.byPath))
	for _, p := range r.byPath {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Render builds the page with components expanded and hydration IDs
// assigned. Two renders with the same Env assign the same IDs.
func (p Page) Render(env Env) *vdom.VNode {
	tree := vdom.Expand(p.Build(env))
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
	return tree
}
