// Package achievement evaluates rule definitions over progression stats and
// tracks which ones the player has earned. Evaluation is stateless; granting
// is monotonic; ids are only ever added until a full reset.
package achievement

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConditionKind is a closed enum; every switch over it handles all kinds.
type ConditionKind int

const (
	CompleteLevels ConditionKind = iota
	ThreeStarLevels
	CollectStars
	CompleteCategories
	StreakDays
	FastMatches
	AllCategories
)

var kindNames = map[string]ConditionKind{
	"complete_levels":     CompleteLevels,
	"three_star_levels":   ThreeStarLevels,
	"collect_stars":       CollectStars,
	"complete_categories": CompleteCategories,
	"streak_days":         StreakDays,
	"fast_matches":        FastMatches,
	"all_categories":      AllCategories,
}

func (k *ConditionKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	kind, ok := kindNames[raw]
	if !ok {
		return fmt.Errorf("unknown achievement condition %q", raw)
	}
	*k = kind
	return nil
}

type Condition struct {
	Kind  ConditionKind `yaml:"kind"`
	Value int           `yaml:"value"`
}

type Definition struct {
	ID        string    `yaml:"id"`
	NameKey   string    `yaml:"name_key"`
	Glyph     string    `yaml:"glyph"`
	Condition Condition `yaml:"condition"`
	// Reward is the bonus-star grant credited on unlock.
	Reward int `yaml:"reward"`
}

//go:embed data/achievements.yaml
var defaultDefinitions []byte

// LoadDefinitions parses the bundled achievement list.
func LoadDefinitions() ([]Definition, error) {
	var doc struct {
		Achievements []Definition `yaml:"achievements"`
	}
	if err := yaml.Unmarshal(defaultDefinitions, &doc); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	if len(doc.Achievements) == 0 {
		return nil, fmt.Errorf("achievement list is empty")
	}
	return doc.Achievements, nil
}

// Stats is the post-write snapshot achievements are judged against.
type Stats struct {
	LevelsCompleted     int
	LifetimeStars       int
	ThreeStarLevels     int
	CategoriesCompleted int
	TotalCategories     int
	CurrentStreak       int
	FastMatches         int
}

func (c Condition) met(s Stats) bool {
	switch c.Kind {
	case CompleteLevels:
		return s.LevelsCompleted >= c.Value
	case ThreeStarLevels:
		return s.ThreeStarLevels >= c.Value
	case CollectStars:
		return s.LifetimeStars >= c.Value
	case CompleteCategories:
		return s.CategoriesCompleted >= c.Value
	case StreakDays:
		return s.CurrentStreak >= c.Value
	case FastMatches:
		return s.FastMatches >= c.Value
	case AllCategories:
		return s.TotalCategories > 0 && s.CategoriesCompleted >= s.TotalCategories
	default:
		return false
	}
}

// Evaluate returns the definitions newly satisfied by stats, skipping ids in
// unlocked. First satisfaction wins; re-evaluating after a grant yields
// nothing for the same id.
func Evaluate(defs []Definition, stats Stats, unlocked map[string]bool) []Definition {
	var newly []Definition
	for _, def := range defs {
		if unlocked[def.ID] {
			continue
		}
		if def.Condition.met(stats) {
			newly = append(newly, def)
		}
	}
	return newly
}
