package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/loopatlas/internal/config"
	"github.com/harrison/loopatlas/internal/logger"
	"github.com/harrison/loopatlas/taxonomy"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for loopatlas
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loopatlas",
		Short: "Explore the behavioral loop taxonomy",
		Long: `Loopatlas browses a curated taxonomy of self-reinforcing behavioral
loops, together with the emotion, cognitive bias, and personality trait
catalogs that feed them.

The dataset ships embedded in the binary; point --data-dir at a
directory of loops.json, emotions.json, biases.json, and traits.json
files to browse a local copy instead.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $LOOPATLAS_HOME/config.yaml)")
	cmd.PersistentFlags().String("data-dir", "", "Load the dataset from this directory instead of the embedded copy")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	cmd.AddCommand(NewCategoriesCommand())
	cmd.AddCommand(NewLoopsCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewEmotionsCommand())
	cmd.AddCommand(NewBiasesCommand())
	cmd.AddCommand(NewTraitsCommand())
	cmd.AddCommand(NewStatsCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}

// loadCommandConfig resolves configuration for a command invocation:
// file values first, then environment, then any changed flags.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", configPath, err)
	}

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevel
	}

	var noColorPtr *bool
	if cmd.Flags().Changed("no-color") {
		noColor, _ := cmd.Flags().GetBool("no-color")
		noColorPtr = &noColor
	}

	var dataDirPtr *string
	if cmd.Flags().Changed("data-dir") {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		dataDirPtr = &dataDir
	}

	cfg.MergeWithFlags(logLevelPtr, noColorPtr, dataDirPtr, nil)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadAtlas returns the atlas a command should operate on: the
// directory named by --data-dir (or the config file) when set, the
// embedded dataset otherwise.
func loadAtlas(cmd *cobra.Command) (*taxonomy.Atlas, *config.Config, error) {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DataDir != "" {
		atlas, err := taxonomy.LoadDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("load dataset from %s: %w", cfg.DataDir, err)
		}
		return atlas, cfg, nil
	}

	return taxonomy.Default(), cfg, nil
}

// colorEnabled reports whether table output should be colorized:
// only on a terminal, and never when color is disabled by flag,
// config, or NO_COLOR.
func colorEnabled(cfg *config.Config) bool {
	if cfg.NoColor || color.NoColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// newLogger builds the console logger for a command run. Log lines go
// to stderr so stdout stays clean for piped table output.
func newLogger(cfg *config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)
}

// printLines writes formatted display lines to the command output.
func printLines(output io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(output, line)
	}
}

// applyLimit truncates loops to the first limit entries when limit is
// positive.
func applyLimit(loops []taxonomy.BehavioralLoop, limit int) []taxonomy.BehavioralLoop {
	if limit > 0 && len(loops) > limit {
		return loops[:limit]
	}
	return loops
}
