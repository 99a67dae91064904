package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
)

// NewTraitsCommand creates the traits subcommand
func NewTraitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traits",
		Short: "List the personality trait catalog",
		Long: `List the personality traits in the dataset, optionally filtered by
dimension (for example extraversion, neuroticism).

Examples:
  loopatlas traits
  loopatlas traits --dimension openness`,
		Args:         cobra.NoArgs,
		RunE:         runTraits,
		SilenceUsage: true,
	}

	cmd.Flags().String("dimension", "", "Filter by trait dimension")

	return cmd
}

func runTraits(cmd *cobra.Command, args []string) error {
	dimension, _ := cmd.Flags().GetString("dimension")

	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	traits := atlas.Traits()
	if dimension != "" {
		traits = atlas.TraitsByDimension(dimension)
	}

	lines := display.FormatTraitTable(traits, colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
