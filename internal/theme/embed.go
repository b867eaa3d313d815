package theme

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/jmylchreest/kittengames/internal/model"
)

// EmbeddedThemes contains all bundled theme documents.
//
//go:embed themes/*.json
var EmbeddedThemes embed.FS

// DefaultThemeName is the id of the built-in default theme.
const DefaultThemeName = model.DefaultThemeID

// BundledThemes lists all embedded theme ids in display order.
var BundledThemes = []string{
	"dark",
	"nord",
	"sunset",
	"volcano",
	"synthwave",
	"ocean",
	"warmOcean",
	"abyss",
	"eclipse",
	"lightSunset",
	"pastelDream",
	"lightOcean",
	"midday",
}

var (
	builtinsOnce sync.Once
	builtins     map[string]*model.Theme
)

// loadBuiltins parses every bundled theme once. The documents ship with the
// binary, so a parse failure is a build defect and panics.
func loadBuiltins() map[string]*model.Theme {
	builtinsOnce.Do(func() {
		builtins = make(map[string]*model.Theme, len(BundledThemes))
		for _, id := range BundledThemes {
			t, err := parseEmbedded(id)
			if err != nil {
				panic(fmt.Sprintf("theme: bundled theme %q: %v", id, err))
			}
			builtins[id] = t
		}
	})
	return builtins
}

func parseEmbedded(id string) (*model.Theme, error) {
	data, err := EmbeddedThemes.ReadFile("themes/" + id + ".json")
	if err != nil {
		return nil, err
	}

	var t model.Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBuiltin returns a copy of the bundled theme with the given id.
func GetBuiltin(id string) (*model.Theme, bool) {
	t, ok := loadBuiltins()[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// ListBuiltin returns the ids of all bundled themes in display order.
func ListBuiltin() []string {
	return slices.Clone(BundledThemes)
}

// IsBuiltin checks if a theme id is bundled.
func IsBuiltin(id string) bool {
	_, ok := loadBuiltins()[id]
	return ok
}

// Default returns a copy of the default theme.
func Default() *model.Theme {
	return loadBuiltins()[DefaultThemeName].Clone()
}
