package config

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/dailycontents/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Export.Dir != DefaultOutput {
		t.Errorf("Export.Dir = %q, want %q", cfg.Export.Dir, DefaultOutput)
	}
	if cfg.Site.Owner != DefaultOwner {
		t.Errorf("Site.Owner = %q, want %q", cfg.Site.Owner, DefaultOwner)
	}
	if !cfg.Server.Live || !cfg.Metrics.Enabled {
		t.Error("live channel and metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dailycontents.yaml", `
server:
  host: 0.0.0.0
  port: 8080
  shutdownTimeout: 2s
site:
  owner: Acme
export:
  bucket: acme-site
  region: eu-west-1
  prefix: www/
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.ShutdownTimeout() != 2*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if cfg.ReadTimeout() != 10*time.Second {
		t.Errorf("ReadTimeout() = %v, want default 10s", cfg.ReadTimeout())
	}
	if cfg.Site.Owner != "Acme" || cfg.Site.Lang != "en" {
		t.Errorf("Site = %+v", cfg.Site)
	}
	if !cfg.UseS3() || cfg.Export.Prefix != "www/" {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Export.Dir != "" {
		t.Errorf("Export.Dir = %q, want empty when a bucket is set", cfg.Export.Dir)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dailycontents.json", `{
  "server": {"port": 9090, "live": false},
  "metrics": {"enabled": false},
  "render": {"pretty": true}
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Live {
		t.Error("Server.Live = true, want false")
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if !cfg.Render.Pretty || cfg.Render.Indent != "  " {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "E100"},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "server: [unclosed"), "E101"},
		{"bad json", writeFile(t, dir, "bad.json", "{ invalid"), "E101"},
		{"unknown extension", writeFile(t, dir, "conf.toml", "port = 1"), "E102"},
		{"bad duration", writeFile(t, dir, "dur.yaml", "server:\n  readTimeout: soon\n"), "E103"},
		{"bad port", writeFile(t, dir, "port.json", `{"server":{"port":70000}}`), "E103"},
		{"bad level", writeFile(t, dir, "level.yaml", "log:\n  level: loud\n"), "E103"},
		{"bucket without region", writeFile(t, dir, "s3.yaml", "export:\n  bucket: b\n"), "E103"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadFileParseErrorKeepsCause(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", "{ invalid")

	_, err := LoadFile(path)
	var syntaxErr *json.SyntaxError
	if !stderrors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want it to wrap a *json.SyntaxError", err)
	}
}

func TestLoadFileExportDirDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(writeFile(t, dir, "dir.yaml", "site:\n  owner: Acme\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Export.Dir != DefaultOutput || cfg.UseS3() {
		t.Errorf("Export = %+v, want the default directory", cfg.Export)
	}

	cfg, err = LoadFile(writeFile(t, dir, "s3.json", `{"export":{"bucket":"b","region":"eu-west-1"}}`))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Export.Dir != "" || !cfg.UseS3() {
		t.Errorf("Export = %+v, want a bucket and no directory", cfg.Export)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(New(), cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load() without a file differs from New() (-want +got):\n%s", diff)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if got := Discover(dir); got != "" {
		t.Errorf("Discover(empty) = %q", got)
	}

	writeFile(t, dir, "dailycontents.json", "{}")
	if got := Discover(dir); filepath.Base(got) != "dailycontents.json" {
		t.Errorf("Discover() = %q", got)
	}

	writeFile(t, dir, "dailycontents.yaml", "")
	if got := Discover(dir); filepath.Base(got) != "dailycontents.yaml" {
		t.Errorf("Discover() = %q, yaml should win", got)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := New()
			cfg.Server.Port = 4000
			cfg.Site.Owner = "Round Trip"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
			}
		})
	}
}

func TestSaveToUnknownExtension(t *testing.T) {
	err := New().SaveTo(filepath.Join(t.TempDir(), "cfg.ini"))
	if !errors.Is(err, "E102") {
		t.Errorf("SaveTo(.ini) = %v", err)
	}
}

func TestValidateMessages(t *testing.T) {
	cfg := New()
	cfg.Metrics.Path = "metrics"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.(*errors.Error).Detail, "metrics.path") {
		t.Errorf("Validate() = %v", err)
	}

	cfg.Metrics.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("metrics path is irrelevant when disabled: %v", err)
	}
}

func TestURL(t *testing.T) {
	cfg := New()
	if cfg.URL() != "http://localhost:3000" {
		t.Errorf("URL() = %q", cfg.URL())
	}
}
