package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/kittengames/internal/catalog"
	"github.com/jmylchreest/kittengames/internal/model"
)

var gamesOpts struct {
	random bool
	limit  int
}

var gamesCmd = &cobra.Command{
	Use:   "games [query]",
	Short: "Search the game catalog",
	Long: `Fetch the game catalog and list games whose name contains the query.

With --random, one game is picked from the search results; without a query
that is the whole catalog.

Examples:
  # List every game
  kittengames games

  # Search by name
  kittengames games bowl

  # Pick one at random from the whole catalog
  kittengames games --random

  # Pick one at random from the games matching a query
  kittengames games --random bowl

  # Pick with a launcher menu
  kittengames games -f dmenu | fuzzel -d`,
	RunE: runGames,
}

func init() {
	rootCmd.AddCommand(gamesCmd)

	gamesCmd.Flags().BoolVarP(&gamesOpts.random, "random", "r", false,
		"Print one random game from the search results (whole catalog without a query)")
	gamesCmd.Flags().IntVarP(&gamesOpts.limit, "limit", "n", 0,
		"Maximum number of games (0 = unlimited)")
}

func runGames(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Catalog.Timeout.Duration())
	defer cancel()

	games, err := launcher.catalog.Fetch(ctx)
	if err != nil {
		return err
	}

	games = catalog.Search(games, strings.Join(args, " "))

	if gamesOpts.random {
		g, ok := catalog.Random(games, nil)
		if !ok {
			return fmt.Errorf("no games match %q", strings.Join(args, " "))
		}
		games = []model.Game{g}
	}

	if gamesOpts.limit > 0 && len(games) > gamesOpts.limit {
		games = games[:gamesOpts.limit]
	}

	return formatter().Games(os.Stdout, games)
}
