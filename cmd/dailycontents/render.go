package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dailycontents/internal/config"
	"github.com/vango-dev/dailycontents/internal/errors"
	"github.com/vango-dev/dailycontents/internal/export"
)

func renderCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render one page to HTML",
		Long: `Render the page registered at <path> to a complete HTML document.

The document is written to stdout unless --output is given. It has no
live client, so buttons render but do nothing.

Examples:
  dailycontents render /
  dailycontents render /users --output=users.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			html, err := newExporter(cfg).Render(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" {
				if _, err := cmd.OutOrStdout().Write(html); err != nil {
					return errors.New("E401").Wrap(err)
				}
				return nil
			}
			if err := os.WriteFile(output, html, 0644); err != nil {
				return errors.New("E401").WithDetail("Cannot write " + output).Wrap(err)
			}
			success(cmd.ErrOrStderr(), "Wrote %s (%d bytes)", output, len(html))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to a file")

	return cmd
}

// newExporter builds an exporter from the site and render settings.
func newExporter(cfg *config.Config) *export.Exporter {
	return export.New(export.Options{
		Render:      rendererConfig(cfg),
		Lang:        cfg.Site.Lang,
		Owner:       cfg.Site.Owner,
		Scripts:     cfg.Site.Scripts,
		StyleSheets: cfg.Site.StyleSheets,
		Logger:      newLogger(cfg, os.Stderr),
	})
}
