package middleware

import "context"

// OpKind is the kind of work an Op describes.
type OpKind string

const (
	// OpRender renders a page to HTML.
	OpRender OpKind = "render"

	// OpActivate dispatches an activation event to a rendered page.
	OpActivate OpKind = "activate"
)

// Activation outcomes reported in Op.Outcome.
const (
	OutcomeInvoked = "invoked"
	OutcomeSubmit  = "submit"
	OutcomeReset   = "reset"
	OutcomeNone    = "none"
	OutcomeUnknown = "unknown"
)

// Op describes one unit of host work passing through the middleware chain.
type Op struct {
	// Ctx is the context for the work. Middlewares may replace it.
	Ctx context.Context

	Kind OpKind

	// Page is the route path of the page, e.g. "/users".
	Page string

	// HID and Event identify the target of an activation.
	HID   string
	Event string

	// Outcome is set by the work itself once it finishes.
	Outcome string

	// Changed reports whether an activation changed the rendered tree.
	Changed bool
}

// Context returns op.Ctx, or context.Background when it is unset.
func (op *Op) Context() context.Context {
	if op.Ctx == nil {
		return context.Background()
	}
	return op.Ctx
}

// Middleware wraps the work described by an Op.
type Middleware interface {
	Handle(op *Op, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(op *Op, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(op *Op, next func() error) error {
	return f(op, next)
}

// Run executes work wrapped by mws. The first middleware is the outermost.
// Nil middlewares are skipped.
func Run(op *Op, work func() error, mws ...Middleware) error {
	next := work
	for i := len(mws) - 1; i >= 0; i-- {
		mw := mws[i]
		if mw == nil {
			continue
		}
		inner := next
		next = func() error { return mw.Handle(op, inner) }
	}
	return next()
}
