package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
	"github.com/harrison/loopatlas/taxonomy"
)

// NewEmotionsCommand creates the emotions subcommand
func NewEmotionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "List the emotion taxonomy",
		Long: `List the emotions in the dataset, optionally filtered by level.

Levels follow the primary/secondary/tertiary hierarchy: primary emotions
are the base set, secondary and tertiary emotions refine them.

Examples:
  loopatlas emotions
  loopatlas emotions --level primary
  loopatlas emotions --level tertiary`,
		Args:         cobra.NoArgs,
		RunE:         runEmotions,
		SilenceUsage: true,
	}

	cmd.Flags().String("level", "", "Filter by level (primary, secondary, tertiary)")

	return cmd
}

func runEmotions(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")

	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	emotions := atlas.Emotions()
	if level != "" {
		switch level {
		case taxonomy.LevelPrimary, taxonomy.LevelSecondary, taxonomy.LevelTertiary:
			emotions = atlas.EmotionsByLevel(level)
		default:
			return fmt.Errorf("invalid level %q: must be one of primary, secondary, tertiary", level)
		}
	}

	lines := display.FormatEmotionTable(emotions, colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
