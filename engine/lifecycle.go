package engine

import "github.com/LukasKanopka/GBVGrabBag-sub001/models"

// BracketState is the lifecycle of a tournament's bracket. The only
// transitions are NotGenerated -> Generated -> Started; the last one is
// a one-way latch that fires the first time any bracket match goes live
// or receives a score, and is never reset automatically.
type BracketState string

const (
	BracketNotGenerated BracketState = "not_generated"
	BracketGenerated    BracketState = "generated"
	BracketStarted      BracketState = "started"
)

// BracketStateOf derives the current state from the stored latch and
// whether bracket matches exist. The latch wins: once started, the
// state stays started even if the matches were somehow removed.
func BracketStateOf(t *models.Tournament, hasBracketMatches bool) BracketState {
	if t.BracketStarted {
		return BracketStarted
	}
	if t.BracketGeneratedAt != nil || hasBracketMatches {
		return BracketGenerated
	}
	return BracketNotGenerated
}

// EnsureRebuildAllowed gates destructive bracket regeneration: allowed
// before bracket play starts, rejected with ErrRebuildBlocked after.
// Callers must not mutate anything when this fails.
func EnsureRebuildAllowed(state BracketState) error {
	if state == BracketStarted {
		return ErrRebuildBlocked
	}
	return nil
}
