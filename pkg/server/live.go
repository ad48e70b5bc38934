package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/dailycontents/pkg/middleware"
	"github.com/vango-dev/dailycontents/pkg/pages"
	"github.com/vango-dev/dailycontents/pkg/render"
	"github.com/vango-dev/dailycontents/pkg/ui"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

const (
	// LivePath is the WebSocket endpoint. The page is selected with ?page=.
	LivePath = "/_live"

	// ClientScriptPath serves the live client.
	ClientScriptPath = "/_live/client.js"
)

// Event is an activation sent by the client.
type Event struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// Reply is the server's answer to one Event.
type Reply struct {
	HID string `json:"hid"`

	// Handled is true when a callback ran.
	Handled bool `json:"handled"`

	// Default names the platform default ("submit", "reset") when no
	// callback ran.
	Default string `json:"default"`

	// Changed reports whether the re-render differed from the previous tree.
	Changed bool `json:"changed"`

	// Patches is the number of DOM operations the re-render produced.
	Patches int `json:"patches"`

	// HTML is the re-rendered page body, set only when Changed.
	HTML string `json:"html,omitempty"`

	Error string `json:"error,omitempty"`
}

// HandleLive upgrades the request and runs a live session for the page
// named by the "page" query parameter.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("page")
	if path == "" {
		path = "/"
	}
	page, ok := s.registry.Lookup(path)
	if !ok {
		http.Error(w, ErrUnknownPage.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.metrics.WebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed", "page", path, "error", err)
		return
	}

	id := chimw.GetReqID(r.Context())
	if id == "" {
		id = r.RemoteAddr
	}
	ls := s.newLiveSession(conn, page, id)

	if !s.track(ls) {
		ls.close(websocket.CloseGoingAway, "server shutting down")
		return
	}
	defer s.untrack(ls)

	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()

	ls.logger.Debug("live session started")
	ls.readLoop(context.WithoutCancel(r.Context()))
	ls.logger.Debug("live session ended")
}

func (s *Server) track(ls *liveSession) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.live[ls] = struct{}{}
	s.conns.Add(1)
	return true
}

func (s *Server) untrack(ls *liveSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live[ls]; ok {
		delete(s.live, ls)
		s.conns.Done()
	}
}

// liveSession owns one connection and the tree rendered for it. Only the
// read loop touches the tree.
type liveSession struct {
	server *Server
	id     string
	conn   *websocket.Conn
	page   pages.Page
	env    pages.Env
	tree   *vdom.VNode
	config *LiveConfig
	logger *slog.Logger

	closeOnce sync.Once
}

func (s *Server) newLiveSession(conn *websocket.Conn, page pages.Page, id string) *liveSession {
	logger := s.logger.With("page", page.Path, "conn", id)
	config := s.config.Live
	if config == nil {
		config = DefaultLiveConfig()
	}
	ls := &liveSession{
		server: s,
		id:     id,
		conn:   conn,
		page:   page,
		env:    s.env(logger, page.Path),
		config: config,
		logger: logger,
	}
	ls.tree = page.Render(ls.env)
	return ls
}

// readLoop reads events until the connection closes. Each event is
// dispatched and answered before the next one is read.
func (ls *liveSession) readLoop(ctx context.Context) {
	defer ls.close(websocket.CloseNormalClosure, "")

	ls.conn.SetReadLimit(ls.config.MaxMessageSize)
	ls.conn.SetPongHandler(func(string) error {
		return ls.conn.SetReadDeadline(time.Now().Add(ls.config.ReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go ls.heartbeat(done)

	for {
		ls.conn.SetReadDeadline(time.Now().Add(ls.config.ReadTimeout))

		_, msg, err := ls.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				ls.server.metrics.WebSocketError("read")
				ls.logger.Error("read error", "error", err)
			}
			return
		}

		var reply Reply
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			ls.logger.Warn("invalid event", "error", err)
			reply = Reply{Error: "invalid event"}
		} else {
			reply = ls.dispatch(ctx, ev)
		}

		ls.conn.SetWriteDeadline(time.Now().Add(ls.config.WriteTimeout))
		if err := ls.conn.WriteJSON(reply); err != nil {
			ls.server.metrics.WebSocketError("write")
			ls.logger.Error("write error", "error", err)
			return
		}
	}
}

// heartbeat pings the client until done is closed. Browsers answer pings
// on their own, and each pong pushes the read deadline forward.
func (ls *liveSession) heartbeat(done <-chan struct{}) {
	if ls.config.HeartbeatInterval <= 0 {
		return
	}
	ticker := time.NewTicker(ls.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(ls.config.WriteTimeout)
			if err := ls.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				ls.logger.Debug("ping failed", "error", err)
				return
			}

		case <-done:
			return
		}
	}
}

// dispatch activates the element ev targets, re-renders the page and
// reports what happened. An unknown HID is not an error.
func (ls *liveSession) dispatch(ctx context.Context, ev Event) Reply {
	reply := Reply{HID: ev.HID}
	op := &middleware.Op{
		Ctx:   ctx,
		Kind:  middleware.OpActivate,
		Page:  ls.page.Path,
		HID:   ev.HID,
		Event: ev.Event,
	}

	err := ls.server.run(op, func() (err error) {
		node := vdom.FindByHID(ls.tree, ev.HID)
		if node == nil {
			op.Outcome = middleware.OutcomeUnknown
			ls.logger.Debug("event for unknown hid", "hid", ev.HID, "event", ev.Event)
			return nil
		}

		defer func() {
			if r := recover(); r != nil {
				ls.logger.Error("handler panic",
					"hid", ev.HID,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
				err = &LiveError{Page: ls.page.Path, Conn: ls.id, Op: "activate", Err: ErrHandlerPanic}
			}
		}()

		act := activate(node, ev.Event)
		reply.Handled = act.Invoked
		reply.Default = string(act.Default)
		op.Outcome = outcome(act)

		next := ls.page.Render(ls.env)
		patches := vdom.Diff(ls.tree, next)
		ls.tree = next
		if len(patches) == 0 {
			return nil
		}

		html, err := render.NewRenderer(ls.server.config.Render).RenderToString(next)
		if err != nil {
			return err
		}
		ls.logger.Debug("page changed", "hid", ev.HID, "patches", patchSummary(patches))
		reply.Changed = true
		reply.Patches = len(patches)
		reply.HTML = html
		op.Changed = true
		return nil
	})
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}

// activate applies event to node. Clicks follow button semantics; other
// events only run a matching handler.
func activate(node *vdom.VNode, event string) ui.Activation {
	if event == "" || event == "click" {
		return ui.Activate(node)
	}
	if h, ok := node.Handler(event); ok && vdom.Invoke(h) {
		return ui.Activation{Invoked: true}
	}
	return ui.Activation{}
}

// patchSummary describes patches as "<op> <hid>" pairs for logs.
func patchSummary(patches []vdom.Patch) []string {
	out := make([]string, 0, len(patches))
	for _, p := range patches {
		target := p.HID
		if target == "" {
			target = p.ParentID
		}
		if p.Key != "" {
			target += " " + p.Key
		}
		out = append(out, strings.TrimSpace(p.Op.String()+" "+target))
	}
	return out
}

func outcome(act ui.Activation) string {
	switch {
	case act.Invoked:
		return middleware.OutcomeInvoked
	case act.Default == ui.DefaultSubmit:
		return middleware.OutcomeSubmit
	case act.Default == ui.DefaultReset:
		return middleware.OutcomeReset
	}
	return middleware.OutcomeNone
}

// close sends a close frame and closes the connection. Safe to call from
// any goroutine, more than once.
func (ls *liveSession) close(code int, reason string) {
	ls.closeOnce.Do(func() {
		if ls.conn == nil {
			return
		}
		deadline := time.Now().Add(time.Second)
		_ = ls.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = ls.conn.Close()
	})
}
