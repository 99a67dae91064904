package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
	"github.com/harrison/loopatlas/taxonomy"
)

// NewLoopsCommand creates the loops subcommand
func NewLoopsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loops",
		Short: "List behavioral loops",
		Long: `List behavioral loops across the atlas, optionally narrowed by one
filter. Filters are mutually exclusive; combine with --limit to cap
the number of rows.

Examples:
  loopatlas loops
  loopatlas loops --category digital-cognitive
  loopatlas loops --origin social
  loopatlas loops --tag dopamine
  loopatlas loops --search "doomscroll"
  loopatlas loops --limit 10`,
		Args:         cobra.NoArgs,
		RunE:         runLoops,
		SilenceUsage: true,
	}

	cmd.Flags().String("category", "", "Only loops in this category id")
	cmd.Flags().String("origin", "", "Only loops with this classification origin")
	cmd.Flags().String("tag", "", "Only loops carrying this tag (case-insensitive)")
	cmd.Flags().String("search", "", "Only loops whose name, behavior, or outcome contains this text")
	cmd.Flags().Int("limit", 0, "Maximum number of loops to list (0 = all)")

	return cmd
}

func runLoops(cmd *cobra.Command, args []string) error {
	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	origin, _ := cmd.Flags().GetString("origin")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")

	if countSet(category, origin, tag, search) > 1 {
		return fmt.Errorf("--category, --origin, --tag, and --search are mutually exclusive")
	}

	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg.MergeWithFlags(nil, nil, nil, &limit)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	var loops []taxonomy.BehavioralLoop
	switch {
	case category != "":
		if _, ok := atlas.Category(category); !ok {
			return fmt.Errorf("category %q not found", category)
		}
		loops = atlas.LoopsByCategory(category)
	case origin != "":
		loops = atlas.LoopsByOrigin(origin)
	case tag != "":
		loops = atlas.LoopsByTag(tag)
	case search != "":
		loops = atlas.SearchLoops(search)
	default:
		loops = atlas.AllLoops()
	}

	loops = applyLimit(loops, cfg.Limit)

	lines := display.FormatLoopTable(loops, colorEnabled(cfg))
	printLines(cmd.OutOrStdout(), lines)
	return nil
}

// countSet counts how many of the given flag values are non-empty.
func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
