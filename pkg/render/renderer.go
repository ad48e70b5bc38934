package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// SanitizeRaw runs KindRaw nodes through RawPolicy before writing them.
	SanitizeRaw bool

	// RawPolicy is the sanitiser used when SanitizeRaw is set.
	// Defaults to bluemonday.UGCPolicy().
	RawPolicy *bluemonday.Policy
}

// Renderer handles server-side rendering of VNode trees to HTML.
// A Renderer is not safe for concurrent use; create one per request.
type Renderer struct {
	config   RendererConfig
	hids     *vdom.HIDGenerator
	handlers map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.SanitizeRaw && config.RawPolicy == nil {
		config.RawPolicy = bluemonday.UGCPolicy()
	}
	return &Renderer{
		config:   config,
		hids:     vdom.NewHIDGenerator(),
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	if err := r.renderNode(sw, node, 0); err != nil {
		return err
	}
	return sw.err
}

// Handlers returns the handlers collected during rendering.
// Keys have the form "hid_event" (e.g., "h1_onclick").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the HID counter and handler registry for reuse.
func (r *Renderer) Reset() {
	r.hids.Reset()
	r.handlers = make(map[string]any)
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
	case vdom.KindComponent:
		if node.Comp != nil {
			return r.renderNode(w, node.Comp.Render(), depth)
		}
	case vdom.KindRaw:
		r.renderRaw(w, node)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
	return w.err
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	r.renderAttributes(w, node)

	if node.HID == "" && node.IsInteractive() {
		node.HID = r.hids.Next()
	}
	if node.HID != "" {
		w.WriteString(` data-hid="` + escapeAttr(node.HID) + `"`)
		r.registerHandlers(node)
	}
	w.WriteString(">")

	if isVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return w.err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		w.WriteString("\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
	return w.err
}

// renderRaw writes raw HTML, sanitised when configured.
func (r *Renderer) renderRaw(w *stickyWriter, node *vdom.VNode) {
	html := node.Text
	if r.config.SanitizeRaw {
		html = r.config.RawPolicy.Sanitize(html)
	}
	w.WriteString(html)
}

// renderAttributes renders all attributes for an element in sorted order,
// followed by one data-on-<event> marker per registered handler.
func (r *Renderer) renderAttributes(w *stickyWriter, node *vdom.VNode) {
	if len(node.Props) == 0 {
		return
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "_") {
			continue
		}
		if vdom.IsEventKey(key) {
			if isEventHandler(value) {
				events = append(events, strings.ToLower(key[2:]))
			}
			// Never emit inline on* attributes.
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteString(" " + key)
				}
				continue
			}
		}

		if s := attrToString(value); s != "" {
			w.WriteString(" " + key + `="` + escapeAttr(s) + `"`)
		}
	}

	for _, ev := range events {
		w.WriteString(` data-on-` + ev + `="true"`)
	}
}

// registerHandlers stores handler references for the node's HID.
func (r *Renderer) registerHandlers(node *vdom.VNode) {
	for key, value := range node.Props {
		if vdom.IsEventKey(key) && isEventHandler(value) {
			r.handlers[node.HID+"_"+strings.ToLower(key)] = value
		}
	}
}

// isEventHandler returns true if the value is a function.
func isEventHandler(value any) bool {
	if value == nil {
		return false
	}
	return reflect.ValueOf(value).Kind() == reflect.Func
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	w.WriteString(strings.Repeat(r.config.Indent, depth))
}
