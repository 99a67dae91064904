package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/display"
	"github.com/harrison/loopatlas/internal/watch"
	"github.com/harrison/loopatlas/taxonomy"
)

// NewValidateCommand creates the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dataset-dir]",
		Short: "Verify dataset integrity",
		Long: `Load a dataset and verify its internal consistency, checking for:
  - Duplicate or missing identifiers
  - Scores and difficulties outside their documented ranges
  - Declared totals drifting from actual counts
  - Cross-references that do not resolve

Without an argument the embedded dataset is verified. With a directory
argument the JSON catalogs in that directory are verified instead, and
--watch keeps the command running, re-verifying on every change.

Warnings are reported but do not fail the command.

Exit code: 0 if valid, 1 if errors found

Examples:
  loopatlas validate
  loopatlas validate ./data
  loopatlas validate ./data --watch`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runValidate,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("watch", false, "Re-run verification whenever dataset files change")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	watchMode, _ := cmd.Flags().GetBool("watch")

	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.DataDir
	if len(args) == 1 {
		dir = args[0]
	}

	output := cmd.OutOrStdout()

	if !watchMode {
		return verifyDataset(dir, colorEnabled(cfg), output)
	}

	if dir == "" {
		return fmt.Errorf("--watch requires a dataset directory")
	}
	return watchDataset(cmd, dir, colorEnabled(cfg), output)
}

// verifyDataset loads one dataset, prints its findings, and returns an
// error if any finding has error severity.
func verifyDataset(dir string, colorOutput bool, output io.Writer) error {
	var atlas *taxonomy.Atlas
	var source string

	if dir == "" {
		atlas = taxonomy.Default()
		source = "embedded dataset"
	} else {
		loaded, err := taxonomy.LoadDir(dir)
		if err != nil {
			fmt.Fprintf(output, "✗ Failed to load dataset from %s\n", dir)
			fmt.Fprintf(output, "  Error: %v\n", err)
			return fmt.Errorf("load dataset from %s: %w", dir, err)
		}
		atlas = loaded
		source = dir
	}

	fmt.Fprintf(output, "Verifying %s:\n", source)

	result := atlas.Verify()
	warnings := result.Warnings()
	errors := result.Errors()

	if len(warnings) > 0 {
		findings := make([]string, len(warnings))
		for i, warning := range warnings {
			findings[i] = warning.String()
		}
		block := display.WarnFindings(fmt.Sprintf("%d curation finding(s)", len(warnings)), findings)
		block.Suggestion = "Warnings do not fail verification; fix the source documents and re-run"
		block.Display(output)
	}

	if len(errors) == 0 {
		stats := atlas.Stats()
		fmt.Fprintf(output, "✓ %d loops across %d categories\n", stats.TotalLoops, stats.TotalCategories)
		fmt.Fprintf(output, "✓ %d emotions, %d biases, %d traits\n",
			len(atlas.Emotions()), len(atlas.Biases()), len(atlas.Traits()))
		if len(warnings) > 0 {
			fmt.Fprintf(output, "\n✓ Dataset is valid with %d warning(s)\n", len(warnings))
		} else {
			fmt.Fprintf(output, "\n✓ Dataset is valid!\n")
		}
		return nil
	}

	fmt.Fprintf(output, "\n✗ Verification failed\n")
	for _, finding := range errors {
		if colorOutput {
			color.New(color.FgRed).Fprintf(output, "  ✗ %s\n", finding)
		} else {
			fmt.Fprintf(output, "  ✗ %s\n", finding)
		}
	}
	fmt.Fprintf(output, "\nFound %d verification error(s)!\n", len(errors))

	return fmt.Errorf("verification failed with %d error(s)", len(errors))
}

// watchDataset verifies dir once, then re-verifies on every change to
// a JSON file inside it until interrupted. Verification failures keep
// the watch running; only a signal ends it.
func watchDataset(cmd *cobra.Command, dir string, colorOutput bool, output io.Writer) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(dir, "*.json")
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := verifyDataset(dir, colorOutput, output); err != nil {
		fmt.Fprintln(output)
	}

	fmt.Fprintf(output, "\nWatching %s for changes, press Ctrl+C to stop...\n", watcher.Dir())

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(output, "\nShutting down...")
			return nil
		case event := <-watcher.Events():
			fmt.Fprintf(output, "\n%s %s at %s\n",
				filepath.Base(event.Path), event.Op, event.Timestamp.Format("15:04:05"))
			if err := verifyDataset(dir, colorOutput, output); err != nil {
				continue
			}
		case err := <-watcher.Errors():
			fmt.Fprintf(output, "watch error: %v\n", err)
		}
	}
}
