package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/export"
)

// NewExportCommand creates the export subcommand
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dataset as a portable artifact",
		Long: `Export the loaded dataset to a single artifact file.

Supported formats: json, markdown, html, csv, sqlite. The output path
defaults to the configured export directory with a format-specific
file name, and writes are atomic so partially written artifacts are
never left behind.

Examples:
  loopatlas export
  loopatlas export --format markdown
  loopatlas export --format json --compact
  loopatlas export --format sqlite --out ./atlas.db`,
		Args:         cobra.NoArgs,
		RunE:         runExport,
		SilenceUsage: true,
	}

	cmd.Flags().String("format", "", "Export format (json, markdown, html, csv, sqlite)")
	cmd.Flags().String("out", "", "Output file path")
	cmd.Flags().Bool("compact", false, "Write JSON without indentation")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	compact, _ := cmd.Flags().GetBool("compact")

	atlas, cfg, err := loadAtlas(cmd)
	if err != nil {
		return err
	}

	if format == "" {
		format = cfg.ExportFormat
	}
	if !export.IsValidFormat(format) {
		return fmt.Errorf("invalid format %q, must be one of: %v", format, export.Formats)
	}
	if compact && format != export.FormatJSON {
		return fmt.Errorf("cannot use --compact with format %q", format)
	}

	if out == "" {
		out = filepath.Join(cfg.ExportDir, export.DefaultFileName(format))
	}

	exporter := export.New(atlas, newLogger(cfg))
	exporter.Compact = compact
	manifest, err := exporter.Export(format, out)
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	fmt.Fprintf(output, "✓ Exported %d loops, %d emotions, %d biases, %d traits\n",
		manifest.Counts.Loops, manifest.Counts.Emotions, manifest.Counts.Biases, manifest.Counts.Traits)
	fmt.Fprintf(output, "  Format:    %s\n", manifest.Format)
	fmt.Fprintf(output, "  Output:    %s\n", out)
	fmt.Fprintf(output, "  Export ID: %s\n", manifest.ExportID)
	return nil
}
