package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default recipes.json",
		Long: `Write recipes.json with default settings into dir (default: the working
directory). Credentials are left empty; set EDAMAM_APP_ID and
EDAMAM_APP_KEY or fill in the edamam section.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.New("E107").
					WithDetail("recipes.json already exists in " + dir).
					WithSuggestion("Use --force to overwrite it")
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing recipes.json")

	return cmd
}
