package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/kittengames/internal/store"
)

var renderOpts struct {
	watch bool
	css   bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the page <head> for the current theme and cloak",
	Long: `Print the page <head> fragment (title, icon and theme CSS) for the
current state.

With --watch, the storage directory is watched and the fragment is printed
again whenever another kittengames process changes the settings, custom
themes or cloak.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVarP(&renderOpts.watch, "watch", "w", false,
		"Re-render when stored state changes")
	renderCmd.Flags().BoolVar(&renderOpts.css, "css", false,
		"Print only the CSS block")
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := printDocument(); err != nil {
		return err
	}
	if !renderOpts.watch {
		return nil
	}

	changes := make(chan string, 16)
	watcher, err := store.NewWatcher(launcher.kv.Dir(), func(key string) {
		select {
		case changes <- key:
		default:
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Stop() }()

	ctx := cmd.Context()
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-changes:
			if err := launcher.reload(key); err != nil {
				logger.Warn("failed to reload state", "key", key, "error", err)
				continue
			}
			if err := printDocument(); err != nil {
				return err
			}
		}
	}
}

func printDocument() error {
	out := launcher.doc.Head()
	if renderOpts.css {
		out = launcher.doc.CSS()
	}
	_, err := fmt.Fprint(os.Stdout, out)
	return err
}
