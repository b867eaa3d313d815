// Package catalog fetches the remote game library and provides the
// search and random-pick helpers used by the launcher.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/kittengames/internal/model"
)

// DefaultURL is the public KittenGames game library.
const DefaultURL = "https://raw.githubusercontent.com/CodingKitten-YT/KittenGames-gamelibrary/main/games.json"

// Client retrieves the game catalog.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewClient creates a catalog client. Empty url uses DefaultURL; zero timeout uses 30s.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
	}
}

// Fetch downloads and decodes the catalog.
func (c *Client) Fetch(ctx context.Context) ([]model.Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog %s returned %d", c.url, resp.StatusCode)
	}

	var games []model.Game
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c.logger.Debug("catalog fetched", "games", len(games), "size", humanize.Bytes(uint64(len(body))))
	return games, nil
}

// Search returns games whose name contains query, ignoring case.
// An empty query returns every game.
func Search(games []model.Game, query string) []model.Game {
	if query == "" {
		return games
	}

	query = strings.ToLower(query)
	var result []model.Game

	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Name), query) {
			result = append(result, g)
		}
	}

	return result
}

// Random picks a game uniformly. rng may be nil to use the global source.
// Returns false if games is empty.
func Random(games []model.Game, rng *rand.Rand) (model.Game, bool) {
	if len(games) == 0 {
		return model.Game{}, false
	}
	if rng == nil {
		return games[rand.IntN(len(games))], true
	}
	return games[rng.IntN(len(games))], true
}
