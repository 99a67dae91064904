package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
)

// NewStatsCommand creates the stats subcommand
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate dataset statistics",
		Long: `Show aggregate statistics over the loaded dataset: loop and category
totals, loop counts per origin and per category, the intervention
difficulty distribution, and the average intervention difficulty.

Examples:
  loopatlas stats
  loopatlas stats --data-dir ./data`,
		Args:         cobra.NoArgs,
		RunE:         runStats,
		SilenceUsage: true,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	lines := display.FormatStats(atlas.Stats(), colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
