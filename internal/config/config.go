package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/dailycontents/internal/errors"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// DefaultOwner is the name shown in the footer.
	DefaultOwner = "Daily Contents"

	// DefaultTailwindScript is loaded on every page so the utility classes resolve.
	DefaultTailwindScript = "https://cdn.tailwindcss.com"
)

// FileNames lists the configuration files Discover looks for, in order.
var FileNames = []string{"dailycontents.yaml", "dailycontents.yml", "dailycontents.json"}

// Config represents the complete dailycontents configuration.
type Config struct {
	// Server contains HTTP host configuration.
	Server ServerConfig `json:"server" yaml:"server"`

	// Site contains document-level settings shared by every page.
	Site SiteConfig `json:"site" yaml:"site"`

	// Render contains HTML renderer settings.
	Render RenderConfig `json:"render" yaml:"render"`

	// Export contains static export settings.
	Export ExportConfig `json:"export" yaml:"export"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log contains logger settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP host settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Timeouts are Go duration strings (e.g., "10s").
	ReadTimeout     string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	WriteTimeout    string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`

	// AllowedOrigins restricts live WebSocket connections. Empty allows
	// same-origin requests only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`

	// Live enables the activation channel. Without it pages are static.
	Live bool `json:"live" yaml:"live"`
}

// SiteConfig contains document-level settings.
type SiteConfig struct {
	// Owner is the copyright holder shown in the footer.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`

	// Lang is the document language.
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// Scripts are external scripts added to every page head.
	Scripts []string `json:"scripts,omitempty" yaml:"scripts,omitempty"`

	// StyleSheets are stylesheets added to every page head.
	StyleSheets []string `json:"styleSheets,omitempty" yaml:"styleSheets,omitempty"`
}

// RenderConfig contains HTML renderer settings.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty" yaml:"pretty,omitempty"`
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`

	// SanitizeRaw passes raw HTML nodes through a UGC policy.
	SanitizeRaw bool `json:"sanitizeRaw,omitempty" yaml:"sanitizeRaw,omitempty"`
}

// ExportConfig contains static export settings. When Bucket is set the
// export goes to S3, otherwise to Dir.
type ExportConfig struct {
	Dir       string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     "10s",
			WriteTimeout:    "10s",
			ShutdownTimeout: "5s",
			Live:            true,
		},
		Site: SiteConfig{
			Owner:   DefaultOwner,
			Lang:    "en",
			Scripts: []string{DefaultTailwindScript},
		},
		Render: RenderConfig{
			Indent: "  ",
		},
		Export: ExportConfig{
			Dir: DefaultOutput,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "dailycontents",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	// Booleans that default to true need New, but the export target is
	// either a bucket or a directory, so its default comes from applyDefaults.
	cfg := New()
	cfg.Export = ExportConfig{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.New("E102").WithDetail("Unknown extension " + strconv.Quote(ext))
	}
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path)).
			WithSuggestion("Check that the file is valid " + strings.TrimPrefix(filepath.Ext(path), ".")).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the first configuration file found in dir, or returns the
// defaults when there is none.
func Load(dir string) (*Config, error) {
	path := Discover(dir)
	if path == "" {
		return New(), nil
	}
	return LoadFile(path)
}

// Discover returns the path of the first configuration file in dir, or ""
// when none exists.
func Discover(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return errors.New("E102").WithDetail("Unknown extension " + strconv.Quote(ext))
	}
	if err != nil {
		return errors.New("E101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E401").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for fields left empty by the file.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Site.Owner == "" {
		c.Site.Owner = d.Site.Owner
	}
	if c.Site.Lang == "" {
		c.Site.Lang = d.Site.Lang
	}
	if c.Render.Indent == "" {
		c.Render.Indent = d.Render.Indent
	}
	if c.Export.Dir == "" && c.Export.Bucket == "" {
		c.Export.Dir = d.Export.Dir
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535")
	}
	for name, value := range map[string]string{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if _, err := parseDuration(value); err != nil {
			return invalid(name + " is not a duration: " + strconv.Quote(value))
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with /")
	}
	if c.Export.Bucket != "" && c.Export.Region == "" && c.Export.Endpoint == "" {
		return invalid("export.bucket requires export.region or export.endpoint")
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return invalid("log.level must be one of debug, info, warn, error")
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return invalid("log.format must be text or json")
	}
	return nil
}

func invalid(detail string) error {
	return errors.New("E103").WithDetail(detail)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := parseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := parseDuration(c.Server.WriteTimeout)
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := parseDuration(c.Server.ShutdownTimeout)
	return d
}

// LogLevel returns the slog level for Log.Level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	if l, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// UseS3 reports whether exports go to a bucket rather than a directory.
func (c *Config) UseS3() bool {
	return c.Export.Bucket != ""
}

// parseDuration accepts an empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
