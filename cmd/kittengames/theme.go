package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/kittengames/internal/model"
	"github.com/jmylchreest/kittengames/internal/settings"
	"github.com/jmylchreest/kittengames/internal/theme"
)

var themeOpts struct {
	activate bool
	head     bool
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Select, inspect and manage colour themes",
	Long: `Select, inspect and manage colour themes.

Built-in themes are chosen by id. Custom themes are JSON documents fetched
from a URL:

  {
    "name": "Forest",
    "colorScheme": "light",
    "colors": {"background": "#f0fff0", "primary": "#228b22"}
  }

Each colour becomes a CSS custom property named after its key.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and cached custom themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatter().Themes(os.Stdout, launcher.themeEntries())
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show [id|url]",
	Short: "Show a theme's colours (default: the active theme)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return formatter().Theme(os.Stdout, launcher.activeEntry())
		}
		entry, ok := launcher.lookupTheme(args[0])
		if !ok {
			return fmt.Errorf("theme %q not found", args[0])
		}
		return formatter().Theme(os.Stdout, entry)
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Activate a built-in theme",
	Long: `Activate a built-in theme. Any custom theme selection is cleared.

Run "kittengames theme list" to see the available ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !theme.IsBuiltin(id) {
			return fmt.Errorf("unknown theme %q", id)
		}
		if _, err := launcher.settings.Update(model.SelectBuiltin(id)); err != nil {
			return err
		}
		return formatter().Theme(os.Stdout, launcher.activeEntry())
	},
}

var themeCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the CSS for the active theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if themeOpts.head {
			_, err := fmt.Fprint(os.Stdout, launcher.doc.Head())
			return err
		}
		_, err := fmt.Fprint(os.Stdout, launcher.doc.CSS())
		return err
	},
}

var themeLoadCmd = &cobra.Command{
	Use:   "load <url>",
	Short: "Fetch a custom theme into the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if _, err := loadCustomTheme(cmd.Context(), url); err != nil {
			return err
		}
		if themeOpts.activate {
			if _, err := launcher.settings.Update(model.SelectCustom(url)); err != nil {
				return err
			}
		}
		entry, _ := launcher.lookupTheme(url)
		return formatter().Theme(os.Stdout, entry)
	},
}

var themeCustomCmd = &cobra.Command{
	Use:   "custom <url>",
	Short: "Activate a custom theme, fetching it if it is not cached",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if _, ok := launcher.customs.Get(url); !ok {
			if _, err := loadCustomTheme(cmd.Context(), url); err != nil {
				return err
			}
		}
		if _, err := launcher.settings.Update(model.SelectCustom(url)); err != nil {
			return err
		}
		return formatter().Theme(os.Stdout, launcher.activeEntry())
	},
}

var themeRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a cached custom theme",
	Long: `Remove a cached custom theme. If it is the active theme the settings
are reset to the default theme.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := launcher.customs.Get(args[0]); !ok {
			logger.Warn("custom theme not cached", "url", args[0])
		}
		return launcher.settings.RemoveCustomTheme(args[0])
	},
}

var themeRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the active custom theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Themes.FetchTimeout.Duration()+5*time.Second)
		defer cancel()

		err := launcher.settings.Refresh(ctx)
		if errors.Is(err, settings.ErrNoCustomTheme) {
			fmt.Fprintln(os.Stderr, "no custom theme is active")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd, themeShowCmd, themeSetCmd, themeCSSCmd,
		themeLoadCmd, themeCustomCmd, themeRemoveCmd, themeRefreshCmd)

	themeLoadCmd.Flags().BoolVar(&themeOpts.activate, "activate", false,
		"Activate the theme after loading it")
	themeCSSCmd.Flags().BoolVar(&themeOpts.head, "head", false,
		"Print an HTML <head> fragment instead of bare CSS")
}

// loadCustomTheme fetches url into the cache with the configured timeout.
func loadCustomTheme(ctx context.Context, url string) (*model.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Themes.FetchTimeout.Duration()+5*time.Second)
	defer cancel()

	t, err := launcher.settings.LoadCustomTheme(ctx, url)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("invalid theme document at %s: %w", url, err)
		}
		return nil, err
	}
	logger.Info("custom theme loaded", "url", url, "name", t.Name)
	return t, nil
}
