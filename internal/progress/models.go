package progress

import (
	"encoding/json"
	"time"
)

// LevelProgress is the single record kept per level. bestMoves only ever
// decreases, attempts only increases, stars never regress below the best
// earned rating.
type LevelProgress struct {
	LevelID      string `json:"levelId"`
	CategoryID   string `json:"categoryId"`
	Completed    bool   `json:"completed"`
	Stars        int    `json:"stars"`
	BestMoves    int    `json:"bestMoves"`
	Attempts     int    `json:"attempts"`
	LastPlayedAt int64  `json:"lastPlayedAt"`
}

// Progress is the one durable aggregate per installation.
//
// Stars are split into two counters: LifetimeStars is the monotonic earned
// watermark (level ratings plus achievement bonuses) that unlock checks gate
// on, and StarBalance is the spendable wallet that cosmetic purchases
// decrement. Spending can therefore never re-lock content.
type Progress struct {
	LifetimeStars     int                      `json:"lifetimeStars"`
	StarBalance       int                      `json:"starBalance"`
	LevelsCompleted   int                      `json:"levelsCompleted"`
	LevelProgress     map[string]LevelProgress `json:"levelProgress"`
	CurrentStreak     int                      `json:"currentStreak"`
	LastPlayedDate    string                   `json:"lastPlayedDate"`
	TotalPlayTime     int64                    `json:"totalPlayTime"`
	FastMatches       int                      `json:"fastMatches"`
	UnlockedCardBacks []string                 `json:"unlockedCardBacks"`
	SelectedCardBack  string                   `json:"selectedCardBack"`

	// TotalStars is the single-counter field older releases persisted. It is
	// consumed by the load-time back-fill and no longer written.
	TotalStars int `json:"totalStars,omitempty"`
}

const (
	DefaultCardBack = "default"
	dateLayout      = "2006-01-02"
)

func DefaultProgress() Progress {
	return Progress{
		LevelProgress:     map[string]LevelProgress{},
		UnlockedCardBacks: []string{DefaultCardBack},
		SelectedCardBack:  DefaultCardBack,
	}
}

// Settings are the user preferences persisted under their own key.
type Settings struct {
	SoundEnabled   bool    `json:"soundEnabled"`
	MusicEnabled   bool    `json:"musicEnabled"`
	Language       string  `json:"language"`
	ColorBlindMode bool    `json:"colorBlindMode"`
	Volume         float64 `json:"volume"`
}

func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		MusicEnabled: true,
		Language:     "tr",
		Volume:       0.7,
	}
}

// ValidProgress is the structural predicate for a stored progress blob.
func ValidProgress(raw json.RawMessage) bool {
	var probe struct {
		LevelProgress *map[string]LevelProgress `json:"levelProgress"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.LevelProgress != nil
}

// ValidSettings rejects blobs whose fields are missing or out of range.
func ValidSettings(raw json.RawMessage) bool {
	var probe struct {
		SoundEnabled *bool    `json:"soundEnabled"`
		MusicEnabled *bool    `json:"musicEnabled"`
		Language     *string  `json:"language"`
		Volume       *float64 `json:"volume"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if probe.SoundEnabled == nil || probe.MusicEnabled == nil || probe.Language == nil || probe.Volume == nil {
		return false
	}
	return *probe.Volume >= 0 && *probe.Volume <= 1
}

// backfill populates fields introduced after the blob was written and reports
// whether anything changed. Running it twice in a row changes nothing the
// second time.
func (p *Progress) backfill() bool {
	changed := false
	if p.LevelProgress == nil {
		p.LevelProgress = map[string]LevelProgress{}
		changed = true
	}
	if len(p.UnlockedCardBacks) == 0 {
		p.UnlockedCardBacks = []string{DefaultCardBack}
		changed = true
	}
	if p.SelectedCardBack == "" {
		p.SelectedCardBack = DefaultCardBack
		changed = true
	}
	// Migrate the single-counter star economy: the old totalStars value is
	// the wallet, earned level ratings are the lifetime floor.
	if p.TotalStars > 0 && p.LifetimeStars == 0 && p.StarBalance == 0 {
		p.StarBalance = p.TotalStars
		p.TotalStars = 0
		changed = true
	}
	if earned := p.earnedStars(); p.LifetimeStars < earned {
		p.LifetimeStars = earned
		changed = true
	}
	return changed
}

func (p *Progress) earnedStars() int {
	sum := 0
	for _, lp := range p.LevelProgress {
		if lp.Completed {
			sum += lp.Stars
		}
	}
	return sum
}

func (p *Progress) completedCount() int {
	n := 0
	for _, lp := range p.LevelProgress {
		if lp.Completed {
			n++
		}
	}
	return n
}

func (p *Progress) hasCardBack(id string) bool {
	for _, cb := range p.UnlockedCardBacks {
		if cb == id {
			return true
		}
	}
	return false
}

// PlayTime exposes the accumulated play time as a duration.
func (p Progress) PlayTime() time.Duration {
	return time.Duration(p.TotalPlayTime) * time.Millisecond
}
