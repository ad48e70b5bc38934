package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/dailycontents/pkg/pages"
	"github.com/vango-dev/dailycontents/pkg/render"
)

// LiveConfig holds configuration for live connections.
type LiveConfig struct {
	// ReadTimeout is the maximum time to wait for the next event.
	// Default: 5 minutes.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a reply.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between server pings. Each pong
	// extends the read deadline, so idle pages keep their connection.
	// Default: 30 seconds, capped at half of ReadTimeout.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming message.
	// Default: 4KB.
	MaxMessageSize int64
}

// DefaultLiveConfig returns a LiveConfig with sensible defaults.
func DefaultLiveConfig() *LiveConfig {
	return &LiveConfig{
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    4 * 1024,
	}
}

// DocumentConfig holds the document-level settings shared by every page.
type DocumentConfig struct {
	// Lang is the html lang attribute. Default: "en".
	Lang string

	// Owner is the copyright holder shown in the footer.
	Owner string

	// Scripts are external scripts added to the head.
	Scripts []string

	// StyleSheets are stylesheets added to the head.
	StyleSheets []string
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: "localhost:3000".
	Address string

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin of live
	// connections. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// Live configures the activation channel. Nil disables it and pages
	// are served without the client script.
	Live *LiveConfig

	// MetricsPath is where Prometheus metrics are served when a gatherer is
	// set. Default: "/metrics".
	MetricsPath string

	// Document holds the settings for every rendered document.
	Document DocumentConfig

	// Render configures the HTML renderer.
	Render render.RendererConfig

	// Styles is the style table passed to pages. Nil means
	// pages.DefaultStyleTable().
	Styles *pages.StyleTable

	// Now is the clock passed to pages. Nil means time.Now.
	Now func() time.Time

	// OnAddUser is called, after logging, when the users page "Add User"
	// button is activated.
	OnAddUser func()

	// Server lifecycle

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 5 seconds.
	ShutdownTimeout time.Duration

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:3000",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		Live:              DefaultLiveConfig(),
		MetricsPath:       "/metrics",
		Document:          DocumentConfig{Lang: "en"},
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// applyDefaults fills in defaults for unset fields. Live is left alone:
// nil is meaningful.
func (c *ServerConfig) applyDefaults() {
	d := DefaultServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.MetricsPath == "" {
		c.MetricsPath = d.MetricsPath
	}
	if c.Document.Lang == "" {
		c.Document.Lang = d.Document.Lang
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.Live != nil {
		dl := DefaultLiveConfig()
		if c.Live.ReadTimeout == 0 {
			c.Live.ReadTimeout = dl.ReadTimeout
		}
		if c.Live.WriteTimeout == 0 {
			c.Live.WriteTimeout = dl.WriteTimeout
		}
		if c.Live.MaxMessageSize == 0 {
			c.Live.MaxMessageSize = dl.MaxMessageSize
		}
		if c.Live.HeartbeatInterval == 0 {
			c.Live.HeartbeatInterval = dl.HeartbeatInterval
		}
		if c.Live.HeartbeatInterval > c.Live.ReadTimeout/2 {
			c.Live.HeartbeatInterval = c.Live.ReadTimeout / 2
		}
	}
}

// Clone returns a copy of the ServerConfig.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Live != nil {
		live := *c.Live
		clone.Live = &live
	}
	clone.Document.Scripts = append([]string(nil), c.Document.Scripts...)
	clone.Document.StyleSheets = append([]string(nil), c.Document.StyleSheets...)
	return &clone
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., non-browser clients)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

// AllowOrigins returns an origin check accepting same-origin requests and
// the listed origins (e.g., "https://example.com"). With no origins it is
// SameOriginCheck.
func AllowOrigins(origins ...string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return SameOriginCheck
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}
