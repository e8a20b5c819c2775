package achievement

import (
	"encoding/json"
	"sync"
	"time"

	"pairplay/internal/storage"
	"pairplay/internal/telemetry"
)

// Progress is the persisted unlock record. Entries are only added, never
// removed, except by a full reset.
type Progress struct {
	UnlockedAchievements []string `json:"unlockedAchievements"`
	TotalBonusStars      int      `json:"totalBonusStars"`
	LastUnlockedAt       int64    `json:"lastUnlockedAt,omitempty"`
}

// ValidProgress is the structural predicate for the stored blob.
func ValidProgress(raw json.RawMessage) bool {
	var probe struct {
		UnlockedAchievements *[]string `json:"unlockedAchievements"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.UnlockedAchievements != nil
}

// Tracker owns the durable achievement record and runs evaluation after each
// ledger write. Check runs from round-completion timers while the stats panel
// reads from key dispatch, so the record is guarded by a mutex.
type Tracker struct {
	store  *storage.Store
	logger *telemetry.JSONLogger
	now    func() time.Time
	defs   []Definition

	mu       sync.Mutex
	progress Progress
}

func NewTracker(store *storage.Store, logger *telemetry.JSONLogger, defs []Definition) *Tracker {
	t := &Tracker{store: store, logger: logger, now: time.Now, defs: defs}
	p := Progress{UnlockedAchievements: []string{}}
	t.store.Load(storage.KeyAchievements, ValidProgress, &p)
	t.progress = p
	return t
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.progress
	p.UnlockedAchievements = append([]string(nil), t.progress.UnlockedAchievements...)
	return p
}

func (t *Tracker) Definitions() []Definition {
	return append([]Definition(nil), t.defs...)
}

func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, u := range t.progress.UnlockedAchievements {
		if u == id {
			return true
		}
	}
	return false
}

// Check evaluates stats and grants every newly qualified achievement,
// returning them for notification. Each grant happens at most once ever.
func (t *Tracker) Check(stats Stats) []Definition {
	t.mu.Lock()
	defer t.mu.Unlock()
	unlocked := make(map[string]bool, len(t.progress.UnlockedAchievements))
	for _, id := range t.progress.UnlockedAchievements {
		unlocked[id] = true
	}
	newly := Evaluate(t.defs, stats, unlocked)
	if len(newly) == 0 {
		return nil
	}
	for _, def := range newly {
		t.progress.UnlockedAchievements = append(t.progress.UnlockedAchievements, def.ID)
		t.progress.TotalBonusStars += def.Reward
		t.logger.Info("achievement.unlocked", map[string]any{"id": def.ID, "reward": def.Reward})
	}
	t.progress.LastUnlockedAt = t.now().UnixMilli()
	t.store.Save(storage.KeyAchievements, t.progress)
	return newly
}

// Reset wipes the record (parent panel).
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = Progress{UnlockedAchievements: []string{}}
	t.store.Save(storage.KeyAchievements, t.progress)
}
