package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dailycontents/internal/config"
	"github.com/vango-dev/dailycontents/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to [file] (default dailycontents.yaml).

The format follows the extension: .yaml, .yml or .json.

Examples:
  dailycontents init
  dailycontents init dailycontents.json
  dailycontents init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileNames[0]
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E400").
					WithDetail(path + " already exists").
					WithSuggestion("Use --force to overwrite it")
			}

			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
