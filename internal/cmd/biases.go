package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
)

// NewBiasesCommand creates the biases subcommand
func NewBiasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biases",
		Short: "List the cognitive bias catalog",
		Long: `List the cognitive biases in the dataset, optionally filtered by
category (for example memory, social, decision).

Examples:
  loopatlas biases
  loopatlas biases --category social`,
		Args:         cobra.NoArgs,
		RunE:         runBiases,
		SilenceUsage: true,
	}

	cmd.Flags().String("category", "", "Filter by bias category")

	return cmd
}

func runBiases(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")

	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	biases := atlas.Biases()
	if category != "" {
		biases = atlas.BiasesByCategory(category)
	}

	lines := display.FormatBiasTable(biases, colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
