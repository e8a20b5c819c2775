package round

import "time"

// CardState is one-directional except the FaceUp -> FaceDown mismatch
// recovery.
type CardState int

const (
	FaceDown CardState = iota
	FaceUp
	Matched
)

type Card struct {
	PairID string
	Image  string
	State  CardState
	// Wrong marks the brief failure indicator between a mismatch and the
	// flip back.
	Wrong bool
}

// Phase sequences a round. Any phase other than AwaitFirst/AwaitSecond has
// input locked: taps arriving then are dropped, never queued.
type Phase int

const (
	PhaseAwaitFirst Phase = iota
	PhaseAwaitSecond
	PhaseNarrating
	PhaseEvaluating
	PhaseMatchPause
	PhaseMismatchPause
	PhaseAdBreak
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitFirst:
		return "await_first"
	case PhaseAwaitSecond:
		return "await_second"
	case PhaseNarrating:
		return "narrating"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseMatchPause:
		return "match_pause"
	case PhaseMismatchPause:
		return "mismatch_pause"
	case PhaseAdBreak:
		return "ad_break"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Timing windows the UI honors between state-machine steps.
const (
	WrongMatchDelay    = 1000 * time.Millisecond
	MatchPauseDelay    = 600 * time.Millisecond
	LevelCompleteDelay = 1500 * time.Millisecond

	// A match counts as fast when the pair is closed within this window of
	// its first flip.
	fastMatchWindow = 3 * time.Second

	// An interstitial opportunity opens every this many matches.
	adCadence = 3
)

// Summary is the exactly-once completion handoff to the progression ledger.
type Summary struct {
	LevelID     string
	CategoryID  string
	Moves       int
	Stars       int
	FastMatches int
	Elapsed     time.Duration
}
