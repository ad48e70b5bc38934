package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dailycontents/internal/config"
	"github.com/vango-dev/dailycontents/internal/export"
)

func exportCmd(opts *options) *cobra.Command {
	var (
		dir    string
		bucket string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every page as static HTML",
		Long: `Render every registered page and write it to a directory or an S3 bucket.

Pages are written with clean URLs (/users becomes users/index.html).
When a bucket is configured the documents are uploaded with the
credentials in AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.

Examples:
  dailycontents export
  dailycontents export --dir=public
  dailycontents export --bucket=my-site --prefix=daily/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides. A directory wins over a
			// configured bucket.
			if dir != "" {
				cfg.Export.Dir = dir
				cfg.Export.Bucket = ""
			}
			if bucket != "" {
				cfg.Export.Bucket = bucket
			}
			if prefix != "" {
				cfg.Export.Prefix = prefix
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			files, err := newExporter(cfg).Export(cmd.Context(), store)
			for _, f := range files {
				success(out, "%s → %s (%d bytes)", f.Page, f.Location, f.Bytes)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			info(out, "Exported %d pages", len(files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")

	return cmd
}

// newStore returns the S3 store when a bucket is configured and the
// directory store otherwise.
func newStore(cfg *config.Config) (export.Store, error) {
	if cfg.UseS3() {
		client := export.NewS3Client(export.S3Options{
			Region:    cfg.Export.Region,
			Endpoint:  cfg.Export.Endpoint,
			PathStyle: cfg.Export.PathStyle,
		})
		return export.NewS3Store(client, cfg.Export.Bucket, cfg.Export.Prefix), nil
	}
	return export.NewDirStore(cfg.Export.Dir)
}
