package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// Invoke calls a handler stored in Props. Only zero-argument callbacks are
// supported; it reports whether the handler was called.
func Invoke(handler any) bool {
	switch h := handler.(type) {
	case func():
		if h == nil {
			return false
		}
		h()
		return true
	default:
		return false
	}
}
