package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dailycontents/internal/config"
	"github.com/vango-dev/dailycontents/internal/errors"
	"github.com/vango-dev/dailycontents/pkg/render"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┬┬ ┬ ┬  ┌─┐┌─┐┌┐┌┌┬┐┌─┐┌┐┌┌┬┐┌─┐
   ││├─┤││ └┬┘  │  │ ││││ │ ├┤ │││ │ └─┐
  ─┴┘┴ ┴┴┴─┘┴   └─┘└─┘┘└┘ ┴ └─┘┘└┘ ┴ └─┘
`

func main() {
	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the global flags.
type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dailycontents",
		Short: "Serve and export the Daily Contents pages",
		Long: `dailycontents hosts the Daily Contents component pages.

Pages are rendered on the server. Button activations travel back over
a WebSocket to the Go callbacks, and the footer is re-rendered on every
request so its year always follows the clock.

Configuration is read from dailycontents.yaml, dailycontents.yml or
dailycontents.json in the working directory, or from --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default: discovered in the working directory)")

	rootCmd.AddCommand(
		serveCmd(opts),
		renderCmd(opts),
		exportCmd(opts),
		initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads the file named by --config, or discovers one in the
// working directory. Without a file the defaults are used.
func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load(".")
}

// newLogger builds the slog logger described by cfg, writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func rendererConfig(cfg *config.Config) render.RendererConfig {
	return render.RendererConfig{
		Pretty:      cfg.Render.Pretty,
		Indent:      cfg.Render.Indent,
		SanitizeRaw: cfg.Render.SanitizeRaw,
	}
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
