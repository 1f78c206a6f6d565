package models

import "time"

// TournamentStatus tracks which phase a tournament is in.
type TournamentStatus string

const (
	StatusDraft     TournamentStatus = "draft"
	StatusSetup     TournamentStatus = "setup"
	StatusPoolPlay  TournamentStatus = "pool_play"
	StatusBracket   TournamentStatus = "bracket"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament is the root record for a single grab-bag event.
// BracketStarted is a one-way latch: it flips to true the first time any
// bracket match goes live or receives a score, and is never reset.
type Tournament struct {
	ID                 int              `json:"id"`
	Name               string           `json:"name"`
	Status             TournamentStatus `json:"status"`
	BracketStarted     bool             `json:"bracket_started"`
	BracketGeneratedAt *time.Time       `json:"bracket_generated_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

var validStatusTransitions = map[TournamentStatus][]TournamentStatus{
	StatusDraft:    {StatusSetup},
	StatusSetup:    {StatusPoolPlay},
	StatusPoolPlay: {StatusBracket},
	StatusBracket:  {StatusCompleted},
}

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSetup, StatusPoolPlay, StatusBracket, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status graph permits moving to next.
// Staying in the current status is always allowed.
func (t *Tournament) CanTransitionTo(next TournamentStatus) bool {
	if t.Status == next {
		return true
	}
	for _, allowed := range validStatusTransitions[t.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
