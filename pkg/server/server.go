package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/dailycontents/internal/errors"
	"github.com/vango-dev/dailycontents/pkg/middleware"
	"github.com/vango-dev/dailycontents/pkg/pages"
	"github.com/vango-dev/dailycontents/pkg/render"
	"github.com/vango-dev/dailycontents/pkg/vdom"
)

// Server is the HTTP/WebSocket host for the registered pages.
type Server struct {
	config   *ServerConfig
	registry *pages.Registry
	styles   pages.StyleTable

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// Op middleware, outermost first
	middleware []middleware.Middleware
	metrics    *middleware.Metrics
	gatherer   prometheus.Gatherer

	// Open live connections, closed on shutdown
	mu      sync.Mutex
	live    map[*liveSession]struct{}
	closing bool
	conns   sync.WaitGroup

	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server for registry with the given configuration.
func New(config *ServerConfig, registry *pages.Registry) *Server {
	if config == nil {
		config = DefaultServerConfig()
	} else {
		config = config.Clone()
		config.applyDefaults()
	}
	if registry == nil {
		registry = pages.DefaultRegistry()
	}

	styles := pages.DefaultStyleTable()
	if config.Styles != nil {
		styles = *config.Styles
	}

	return &Server{
		config:   config,
		registry: registry,
		styles:   styles,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		live:   make(map[*liveSession]struct{}),
		logger: slog.Default().With("component", "server"),
	}
}

// Use appends op middlewares. They wrap every page render and activation.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.middleware = append(s.middleware, mws...)
}

// SetMetrics records ops into m and serves g on the metrics path.
// Either may be nil.
func (s *Server) SetMetrics(m *middleware.Metrics, g prometheus.Gatherer) {
	s.metrics = m
	s.gatherer = g
}

// Handler returns the chi router serving every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	if s.config.Live != nil {
		r.Get(ClientScriptPath, s.serveClientScript)
		r.Get(LivePath, s.HandleLive)
	}

	for _, page := range s.registry.Pages() {
		r.Get(page.Path, s.pageHandler(page))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	})

	return r
}

// pageHandler server-renders page on every request, so the footer always
// shows the current year.
func (s *Server) pageHandler(page pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("page", page.Path, "request_id", chimw.GetReqID(r.Context()))

		var buf bytes.Buffer
		op := &middleware.Op{Ctx: r.Context(), Kind: middleware.OpRender, Page: page.Path}
		err := s.run(op, func() error {
			tree := page.Render(s.env(logger, page.Path))
			return render.NewRenderer(s.config.Render).RenderPage(&buf, s.document(page, tree))
		})
		if err != nil {
			logger.Error("page render failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// env returns the inputs handed to page builders. The add-user callback is
// always present so server-rendered and live trees carry the same IDs.
func (s *Server) env(logger *slog.Logger, path string) pages.Env {
	return pages.Env{
		Styles: s.styles,
		Now:    s.config.Now,
		Owner:  s.config.Document.Owner,
		OnAddUser: func() {
			logger.Info("add user requested", "page", path)
			if s.config.OnAddUser != nil {
				s.config.OnAddUser()
			}
		},
	}
}

func (s *Server) document(page pages.Page, body *vdom.VNode) render.PageData {
	data := render.PageData{
		Body:        body,
		Title:       page.Title,
		Lang:        s.config.Document.Lang,
		StyleSheets: s.config.Document.StyleSheets,
	}
	for _, src := range s.config.Document.Scripts {
		data.Scripts = append(data.Scripts, render.ScriptTag{Src: src})
	}
	if s.config.Live != nil {
		data.ClientScript = ClientScriptPath
		data.LiveURL = liveURL(page.Path)
	}
	return data
}

// run executes work through the op middleware chain.
func (s *Server) run(op *middleware.Op, work func() error) error {
	mws := s.middleware
	if s.metrics != nil {
		mws = append(mws[:len(mws):len(mws)], s.metrics)
	}
	return middleware.Run(op, work, mws...)
}

// liveURL returns the WebSocket path for page.
func liveURL(path string) string {
	return LivePath + "?page=" + url.QueryEscape(path)
}

// Run starts the server and blocks until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "live", s.config.Live != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E300").WithDetail("listen on " + s.config.Address).Wrap(err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes live connections and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	s.closing = true
	for ls := range s.live {
		ls.close(websocket.CloseGoingAway, "server shutting down")
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return errors.New("E301").Wrap(err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return errors.New("E301").Wrap(ctx.Err())
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// LiveConnections returns the number of open live connections.
func (s *Server) LiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger.With("component", "server")
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
