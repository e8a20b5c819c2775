package progress

import (
	"sync"
	"time"

	"pairplay/internal/storage"
	"pairplay/internal/telemetry"
)

// Ledger is the only writer of the progress blob after initial load. All
// other components take snapshots and re-read instead of caching across
// sessions. Callers may hit it from UI dispatch goroutines and timer
// callbacks at once, so every method serializes on the internal mutex.
type Ledger struct {
	store  *storage.Store
	logger *telemetry.JSONLogger
	now    func() time.Time

	mu       sync.Mutex
	progress Progress
}

func NewLedger(store *storage.Store, logger *telemetry.JSONLogger) *Ledger {
	return NewLedgerAt(store, logger, time.Now)
}

// NewLedgerAt injects the clock so streak arithmetic is testable.
func NewLedgerAt(store *storage.Store, logger *telemetry.JSONLogger, now func() time.Time) *Ledger {
	l := &Ledger{store: store, logger: logger, now: now}
	l.load()
	return l
}

func (l *Ledger) load() {
	p := DefaultProgress()
	loaded := l.store.Load(storage.KeyProgress, ValidProgress, &p)
	if p.backfill() && loaded {
		// Exactly one corrective write per load that found a gap.
		l.store.Save(storage.KeyProgress, p)
		l.logger.Info("progress.backfilled", nil)
	}
	l.progress = p
}

// Progress returns a snapshot copy; mutating it does not touch the ledger.
func (l *Ledger) Progress() Progress {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.progress
	p.LevelProgress = make(map[string]LevelProgress, len(l.progress.LevelProgress))
	for k, v := range l.progress.LevelProgress {
		p.LevelProgress[k] = v
	}
	p.UnlockedCardBacks = append([]string(nil), l.progress.UnlockedCardBacks...)
	return p
}

// RecordLevelCompletion folds one finished round into the per-level record:
// bestMoves=min, attempts+=1, stars=max. Lifetime stars and the wallet earn
// the rating improvement, the daily streak advances, and the result persists.
func (l *Ledger) RecordLevelCompletion(levelID, categoryID string, moves, stars int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	lp, ok := l.progress.LevelProgress[levelID]
	if !ok {
		lp = LevelProgress{LevelID: levelID, CategoryID: categoryID, BestMoves: moves}
	}
	if moves < lp.BestMoves || lp.BestMoves == 0 {
		lp.BestMoves = moves
	}
	if stars > lp.Stars {
		lp.Stars = stars
	}
	lp.Completed = true
	lp.Attempts++
	lp.LastPlayedAt = now.UnixMilli()

	before := l.progress.earnedStars()
	l.progress.LevelProgress[levelID] = lp
	l.progress.LevelsCompleted = l.progress.completedCount()
	if delta := l.progress.earnedStars() - before; delta > 0 {
		l.progress.LifetimeStars += delta
		l.progress.StarBalance += delta
	}

	l.touchStreak(now)
	l.store.Save(storage.KeyProgress, l.progress)
	l.logger.Info("progress.level_completed", map[string]any{
		"level": levelID, "moves": moves, "stars": stars, "attempts": lp.Attempts,
	})
}

// touchStreak applies the calendar-day streak rule and always advances
// lastPlayedDate to today.
func (l *Ledger) touchStreak(now time.Time) {
	today := now.Format(dateLayout)
	last := l.progress.LastPlayedDate
	switch {
	case last == "":
		l.progress.CurrentStreak = 1
	case last == today:
		return
	default:
		lastDay, err := time.ParseInLocation(dateLayout, last, now.Location())
		if err != nil {
			l.progress.CurrentStreak = 1
			break
		}
		todayDay, _ := time.ParseInLocation(dateLayout, today, now.Location())
		// Compare calendar dates; a 23-hour DST day is still one day later.
		next := lastDay.AddDate(0, 0, 1)
		if next.Year() == todayDay.Year() && next.YearDay() == todayDay.YearDay() {
			l.progress.CurrentStreak++
		} else {
			l.progress.CurrentStreak = 1
		}
	}
	l.progress.LastPlayedDate = today
}

// SpendStars deducts cost from the wallet and records the cosmetic unlock.
// Already-unlocked ids succeed without a second charge; an unaffordable cost
// fails with no mutation.
func (l *Ledger) SpendStars(cost int, unlockID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.progress.hasCardBack(unlockID) {
		return true
	}
	if cost > l.progress.StarBalance {
		return false
	}
	l.progress.StarBalance -= cost
	l.progress.UnlockedCardBacks = append(l.progress.UnlockedCardBacks, unlockID)
	l.store.Save(storage.KeyProgress, l.progress)
	l.logger.Info("progress.cardback_unlocked", map[string]any{
		"id": unlockID, "cost": cost, "balance": l.progress.StarBalance,
	})
	return true
}

// SelectCardBack persists the choice; unknown/locked ids are rejected.
func (l *Ledger) SelectCardBack(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.progress.hasCardBack(id) {
		return false
	}
	l.progress.SelectedCardBack = id
	l.store.Save(storage.KeyProgress, l.progress)
	return true
}

// GrantBonusStars credits achievement rewards to both counters: bonuses are
// earned stars and spendable.
func (l *Ledger) GrantBonusStars(n int) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress.LifetimeStars += n
	l.progress.StarBalance += n
	l.store.Save(storage.KeyProgress, l.progress)
}

// AddPlayTime accumulates session time, saved immediately.
func (l *Ledger) AddPlayTime(d time.Duration) {
	if d <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress.TotalPlayTime += d.Milliseconds()
	l.store.Save(storage.KeyProgress, l.progress)
}

// AddFastMatches bumps the lifetime fast-match counter used by achievements.
func (l *Ledger) AddFastMatches(n int) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress.FastMatches += n
	l.store.Save(storage.KeyProgress, l.progress)
}

// ResetAll wipes progress back to defaults (parent panel).
func (l *Ledger) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress = DefaultProgress()
	l.store.Save(storage.KeyProgress, l.progress)
	l.logger.Info("progress.reset", nil)
}

// CategoriesCompleted counts categories whose every level is completed, given
// the catalog's level count per category.
func (l *Ledger) CategoriesCompleted(levelTotals map[string]int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	done := map[string]int{}
	for _, lp := range l.progress.LevelProgress {
		if lp.Completed {
			done[lp.CategoryID]++
		}
	}
	n := 0
	for cat, total := range levelTotals {
		if total > 0 && done[cat] >= total {
			n++
		}
	}
	return n
}

// ThreeStarLevels counts levels with a perfect rating.
func (l *Ledger) ThreeStarLevels() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, lp := range l.progress.LevelProgress {
		if lp.Completed && lp.Stars == 3 {
			n++
		}
	}
	return n
}
