package model

// Game is a single entry of the remote game catalog.
type Game struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
	URL   string `json:"url" yaml:"url"`
	Type  string `json:"type" yaml:"type"`
}
