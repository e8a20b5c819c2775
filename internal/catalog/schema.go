package catalog

import (
	"fmt"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// StarThresholds are the move-count ceilings used to grade a round. Each
// field is the maximum number of moves that still earns that rating.
type StarThresholds struct {
	OneStar    int `json:"oneStar"`
	TwoStars   int `json:"twoStars"`
	ThreeStars int `json:"threeStars"`
}

type Level struct {
	ID             string         `json:"id"`
	CategoryID     string         `json:"categoryId"`
	Number         int            `json:"levelNumber"`
	Difficulty     string         `json:"difficulty"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	PairCount      int            `json:"pairCount"`
	StarThresholds StarThresholds `json:"starThresholds"`
	ImagePaths     []string       `json:"imagePaths"`
}

type Category struct {
	ID                string  `json:"id"`
	NameKey           string  `json:"nameKey"`
	DescriptionKey    string  `json:"descriptionKey"`
	Icon              string  `json:"icon"`
	UnlockRequirement int     `json:"unlockRequirement"`
	Levels            []Level `json:"levels"`
}

// Difficulty presets used when level data omits explicit thresholds.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

func ThresholdsFor(difficulty string) StarThresholds {
	switch difficulty {
	case DifficultyMedium:
		return StarThresholds{OneStar: 30, TwoStars: 18, ThreeStars: 12}
	case DifficultyHard:
		return StarThresholds{OneStar: 40, TwoStars: 24, ThreeStars: 16}
	default:
		return StarThresholds{OneStar: 20, TwoStars: 12, ThreeStars: 8}
	}
}

func (c Category) Validate() error {
	if !idPattern.MatchString(c.ID) {
		return fmt.Errorf("invalid category id %q", c.ID)
	}
	if c.NameKey == "" {
		return fmt.Errorf("category %s: nameKey is required", c.ID)
	}
	if c.UnlockRequirement < 0 {
		return fmt.Errorf("category %s: unlockRequirement must be >= 0", c.ID)
	}
	return nil
}

func (l Level) Validate() error {
	if !idPattern.MatchString(l.ID) {
		return fmt.Errorf("invalid level id %q", l.ID)
	}
	if l.CategoryID == "" {
		return fmt.Errorf("level %s: categoryId is required", l.ID)
	}
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("level %s: grid must be positive", l.ID)
	}
	if l.PairCount <= 0 {
		return fmt.Errorf("level %s: pairCount must be > 0", l.ID)
	}
	// The grid must be fully tileable by pairs, no dangling single cell.
	cells := l.Rows * l.Cols
	if cells < l.PairCount*2 {
		return fmt.Errorf("level %s: %dx%d grid cannot hold %d pairs", l.ID, l.Rows, l.Cols, l.PairCount)
	}
	if cells%2 != 0 {
		return fmt.Errorf("level %s: grid cell count must be even", l.ID)
	}
	if len(l.ImagePaths) < l.PairCount {
		return fmt.Errorf("level %s: need %d image paths, have %d", l.ID, l.PairCount, len(l.ImagePaths))
	}
	return nil
}

func applyLevelDefaults(l *Level, categoryID string) {
	if l.CategoryID == "" {
		l.CategoryID = categoryID
	}
	if l.Difficulty == "" {
		l.Difficulty = DifficultyEasy
	}
	zero := StarThresholds{}
	if l.StarThresholds == zero {
		l.StarThresholds = ThresholdsFor(l.Difficulty)
	}
}
