package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/kittengames/internal/model"
)

var cloakOpts struct {
	title string
	icon  string
}

var cloakCmd = &cobra.Command{
	Use:   "cloak",
	Short: "Disguise the page title and icon",
	Long: `Disguise the page title and icon.

The icon may be a direct .ico/.png/.svg URL or any site address; sites are
resolved to their favicon through the configured favicon service.`,
}

var cloakShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cloak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatter().Cloak(os.Stdout, launcher.cloakView())
	},
}

var cloakSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the page title and/or icon",
	Example: `  kittengames cloak set --title "Classes" --icon classroom.google.com
  kittengames cloak set --icon https://example.com/favicon.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch model.CloakPatch
		if cmd.Flags().Changed("title") {
			patch.PageTitle = &cloakOpts.title
		}
		if cmd.Flags().Changed("icon") {
			patch.IconURL = &cloakOpts.icon
		}
		if patch.PageTitle == nil && patch.IconURL == nil {
			return errors.New("nothing to set: use --title and/or --icon")
		}

		if _, err := launcher.cloak.Update(patch); err != nil {
			return err
		}
		return formatter().Cloak(os.Stdout, launcher.cloakView())
	},
}

var cloakRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the cloak and restore the original title and icon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.cloak.Remove()
	},
}

func init() {
	rootCmd.AddCommand(cloakCmd)
	cloakCmd.AddCommand(cloakShowCmd, cloakSetCmd, cloakRemoveCmd)

	cloakSetCmd.Flags().StringVar(&cloakOpts.title, "title", "", "Page title")
	cloakSetCmd.Flags().StringVar(&cloakOpts.icon, "icon", "", "Icon URL or site address")
}
