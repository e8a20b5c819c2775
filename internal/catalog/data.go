package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/categories.json
var defaultCategories []byte

//go:embed data/cardbacks.yaml
var defaultCardBacks []byte

// EmbeddedSource serves the category data bundled with the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Fetch(context.Context) ([]byte, error) {
	return defaultCategories, nil
}

// CardBack is a purchasable cosmetic deck skin.
type CardBack struct {
	ID         string `yaml:"id"`
	NameKey    string `yaml:"name_key"`
	Glyph      string `yaml:"glyph"`
	UnlockCost int    `yaml:"unlock_cost"`
	Default    bool   `yaml:"default"`
}

// LoadCardBacks parses the bundled card-back catalog.
func LoadCardBacks() ([]CardBack, error) {
	var doc struct {
		CardBacks []CardBack `yaml:"card_backs"`
	}
	if err := yaml.Unmarshal(defaultCardBacks, &doc); err != nil {
		return nil, fmt.Errorf("parse card backs: %w", err)
	}
	if len(doc.CardBacks) == 0 {
		return nil, fmt.Errorf("card back catalog is empty")
	}
	return doc.CardBacks, nil
}
