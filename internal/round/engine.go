// Package round runs a single play session of the matching game: it deals
// the board, accepts flip inputs, evaluates pairs, and reports the finished
// round exactly once. The engine is single-goroutine and caller-clocked:
// every suspension (narration, mismatch delay, ad window) is a phase the UI
// resolves by calling the matching *Done method after its timer or
// collaborator finishes.
package round

import (
	"fmt"
	"math/rand"
	"time"

	"pairplay/internal/catalog"
	"pairplay/internal/unlock"
)

type Engine struct {
	level catalog.Level
	cards []Card
	now   func() time.Time

	phase   Phase
	flipped []int

	moves       int
	matches     int
	fastMatches int

	startedAt    time.Time
	firstFlipAt  time.Time
	completeSent bool
}

// New deals a fresh board. The level must already be resolved from the
// catalog; an untileable level is a caller bug, not a runtime condition.
func New(level catalog.Level, rng *rand.Rand) (*Engine, error) {
	return newAt(level, rng, time.Now)
}

func newAt(level catalog.Level, rng *rand.Rand, now func() time.Time) (*Engine, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("deal level: %w", err)
	}
	e := &Engine{
		level:     level,
		now:       now,
		phase:     PhaseAwaitFirst,
		startedAt: now(),
	}
	e.deal(rng)
	return e, nil
}

// deal takes the first pairCount image paths (truncation, not sampling; the
// level data curates variety), duplicates each into a pair, and shuffles the
// multiset with a Fisher-Yates pass. Positions beyond pairCount*2 stay empty.
func (e *Engine) deal(rng *rand.Rand) {
	images := e.level.ImagePaths[:e.level.PairCount]
	cards := make([]Card, 0, len(images)*2)
	for _, img := range images {
		cards = append(cards, Card{PairID: img, Image: img}, Card{PairID: img, Image: img})
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	e.cards = cards
}

func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) Moves() int { return e.moves }

func (e *Engine) Matches() int { return e.matches }

func (e *Engine) TotalPairs() int { return e.level.PairCount }

func (e *Engine) Level() catalog.Level { return e.level }

// Cards returns the dealt board in grid order (left-to-right, top-to-bottom).
func (e *Engine) Cards() []Card {
	return append([]Card(nil), e.cards...)
}

// InputLocked reports whether a tap would be dropped right now.
func (e *Engine) InputLocked() bool {
	return e.phase != PhaseAwaitFirst && e.phase != PhaseAwaitSecond
}

// Flip accepts a tap on the card at idx. It returns false (and changes
// nothing) while input is locked, for an out-of-range index, or when the card
// is not face down. An accepted flip reveals the card and suspends into the
// narration window; the caller resolves it with NarrationDone.
func (e *Engine) Flip(idx int) bool {
	if e.InputLocked() {
		return false
	}
	if idx < 0 || idx >= len(e.cards) {
		return false
	}
	if e.cards[idx].State != FaceDown {
		return false
	}
	e.cards[idx].State = FaceUp
	e.flipped = append(e.flipped, idx)
	if len(e.flipped) == 1 {
		e.firstFlipAt = e.now()
	}
	e.phase = PhaseNarrating
	return true
}

// FlippedImage names the most recently revealed card, for narration.
func (e *Engine) FlippedImage() string {
	if len(e.flipped) == 0 {
		return ""
	}
	return e.cards[e.flipped[len(e.flipped)-1]].Image
}

// NarrationDone ends the per-flip narration window. With one card up play
// returns to awaiting the second flip; with two it suspends into evaluation.
func (e *Engine) NarrationDone() {
	if e.phase != PhaseNarrating {
		return
	}
	if len(e.flipped) == 2 {
		e.phase = PhaseEvaluating
		return
	}
	e.phase = PhaseAwaitSecond
}

// EvalResult describes the outcome of one evaluation step.
type EvalResult struct {
	Matched  bool
	Pair     string
	Complete bool
	AdBreak  bool
}

// Evaluate compares the two face-up cards. A move is two cards revealed, not
// a correct match, so moves increments unconditionally. Matches make both
// cards terminal; mismatches suspend into the failure-indicator window until
// ResolveMismatch.
func (e *Engine) Evaluate() (EvalResult, bool) {
	if e.phase != PhaseEvaluating || len(e.flipped) != 2 {
		return EvalResult{}, false
	}
	e.moves++
	a, b := &e.cards[e.flipped[0]], &e.cards[e.flipped[1]]
	res := EvalResult{Pair: a.PairID}
	if a.PairID == b.PairID {
		res.Matched = true
		a.State, b.State = Matched, Matched
		e.matches++
		if e.now().Sub(e.firstFlipAt) <= fastMatchWindow {
			e.fastMatches++
		}
		e.flipped = e.flipped[:0]
		if e.matches == e.level.PairCount {
			res.Complete = true
			e.phase = PhaseComplete
			return res, true
		}
		if e.matches%adCadence == 0 {
			res.AdBreak = true
			e.phase = PhaseAdBreak
			return res, true
		}
		e.phase = PhaseMatchPause
		return res, true
	}
	a.Wrong, b.Wrong = true, true
	e.phase = PhaseMismatchPause
	return res, true
}

// MatchPauseDone ends the brief win-feedback window after a non-terminal
// match.
func (e *Engine) MatchPauseDone() {
	if e.phase == PhaseMatchPause {
		e.phase = PhaseAwaitFirst
	}
}

// ResolveMismatch flips both wrong cards back down after the fixed delay.
func (e *Engine) ResolveMismatch() {
	if e.phase != PhaseMismatchPause {
		return
	}
	for _, idx := range e.flipped {
		e.cards[idx].State = FaceDown
		e.cards[idx].Wrong = false
	}
	e.flipped = e.flipped[:0]
	e.phase = PhaseAwaitFirst
}

// AdBreakDone resumes play after the interstitial window, whether or not the
// ad actually showed; ad failures never stall a round.
func (e *Engine) AdBreakDone() {
	if e.phase == PhaseAdBreak {
		e.phase = PhaseAwaitFirst
	}
}

// ConsumeCompletion yields the round summary exactly once after the final
// match. Subsequent calls return false, which is what makes the ledger
// handoff safe under double-fire.
func (e *Engine) ConsumeCompletion() (Summary, bool) {
	if e.phase != PhaseComplete || e.completeSent {
		return Summary{}, false
	}
	e.completeSent = true
	return Summary{
		LevelID:     e.level.ID,
		CategoryID:  e.level.CategoryID,
		Moves:       e.moves,
		Stars:       unlock.Stars(e.moves, e.level.StarThresholds),
		FastMatches: e.fastMatches,
		Elapsed:     e.now().Sub(e.startedAt),
	}, true
}
