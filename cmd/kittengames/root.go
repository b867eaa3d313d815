// Package main provides the CLI entrypoint for kittengames.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/kittengames/internal/adapter/output"
	"github.com/jmylchreest/kittengames/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		dataDir    string
		format     string
		noColor    bool
		template   string
	}
	logger *slog.Logger

	// launcher holds the stores built for this invocation
	launcher *app
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kittengames",
	Short: "Game launcher state: themes, custom themes and tab cloak",
	Long: `kittengames manages the state of the KittenGames launcher.

It selects built-in and custom colour themes, disguises the page title and
icon with a cloak, and browses the remote game catalog. The resulting page
state can be rendered as CSS or an HTML <head> fragment.

Running kittengames without a subcommand prints the status.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.dataDir != "" {
			cfg.Storage.Dir = globalOpts.dataDir
		}

		switch output.FormatType(globalOpts.format) {
		case output.FormatPlain, output.FormatJSON, output.FormatYAML, output.FormatDmenu:
		default:
			return fmt.Errorf("unknown format %q (plain, json, yaml, dmenu)", globalOpts.format)
		}

		launcher, err = newApp(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/kittengames/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dataDir, "data-dir", "",
		"Storage directory (default: ~/.local/share/kittengames)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.format, "format", "f", string(output.FormatPlain),
		"Output format: plain, json, yaml, dmenu")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.noColor, "no-color", false,
		"Disable colour swatches in plain output")
	rootCmd.PersistentFlags().StringVar(&globalOpts.template, "template", "",
		"Line template for dmenu output (e.g. '{{.Item.Name}}')")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// formatter returns the formatter selected by --format.
func formatter() output.Formatter {
	opts := output.DefaultFormatterOptions()
	opts.NoColor = globalOpts.noColor
	opts.Template = globalOpts.template
	return output.NewFormatter(output.FormatType(globalOpts.format), opts)
}
