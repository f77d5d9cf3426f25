package cardstore

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/swipedeck/internal/card"
)

//go:embed data/demo.yaml
var demoFS embed.FS

// File is the on-disk card list format shared by the fallback file and the
// docserver seed.
type File struct {
	Cards []card.Card `yaml:"cards"`
}

// Parse decodes a YAML card file.
func Parse(data []byte) ([]card.Card, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	return f.Cards, nil
}

// LoadFile reads and parses a YAML card file.
func LoadFile(path string) ([]card.Card, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("card file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	cards, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// Demo returns the built-in demo deck.
func Demo() []card.Card {
	raw, err := demoFS.ReadFile("data/demo.yaml")
	if err != nil {
		panic(fmt.Sprintf("read embedded demo deck: %v", err))
	}
	cards, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("embedded demo deck: %v", err))
	}
	return cards
}
