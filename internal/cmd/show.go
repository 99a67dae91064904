package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
)

// NewShowCommand creates the show subcommand
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <loop-id>",
		Short: "Show one behavioral loop in full",
		Long: `Show the complete record for a single loop: the trigger cycle, its
classification and scores, and the intervention guidance.

Examples:
  loopatlas show 21
  loopatlas show 3 --no-color`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid loop id %q: must be a number", args[0])
	}

	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	loop, ok := atlas.LoopByID(id)
	if !ok {
		return fmt.Errorf("loop %d not found", id)
	}

	lines := display.FormatLoopDetail(loop, colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}
