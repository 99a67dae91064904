package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
)

// NewCategoriesCommand creates the categories subcommand
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List behavioral loop categories",
		Long: `List every loop category in the atlas with its loop count.

Examples:
  loopatlas categories
  loopatlas categories --data-dir ./my-dataset`,
		Args:         cobra.NoArgs,
		RunE:         runCategories,
		SilenceUsage: true,
	}

	return cmd
}

func runCategories(cmd *cobra.Command, args []string) error {
	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	lines := display.FormatCategoryTable(atlas.Categories(), colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
