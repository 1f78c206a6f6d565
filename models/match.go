package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

type MatchType string

const (
	MatchTypePool    MatchType = "pool"
	MatchTypeBracket MatchType = "bracket"
)

// Match covers both pool and bracket play. Pool matches carry PoolID,
// RoundNumber and a referee; bracket matches carry RoundNumber plus
// BracketIndex, the 0-based position within the round. The match at
// (round, index) is fed by the round-1 matches at index 2i and 2i+1,
// so no stored next-match link is needed.
//
// Team references are nil while a slot is unfilled (a later bracket
// round, or the empty side of a bye). WinnerID, when set, always equals
// one of the two team references.
type Match struct {
	ID           uuid.UUID   `json:"id"`
	TournamentID int         `json:"tournament_id"`
	Type         MatchType   `json:"type"`
	PoolID       *int        `json:"pool_id,omitempty"`
	RoundNumber  int         `json:"round_number"`
	BracketIndex int         `json:"bracket_index"`
	Team1ID      *int        `json:"team1_id,omitempty"`
	Team2ID      *int        `json:"team2_id,omitempty"`
	RefereeID    *int        `json:"referee_id,omitempty"`
	Score1       *int        `json:"score1,omitempty"`
	Score2       *int        `json:"score2,omitempty"`
	WinnerID     *int        `json:"winner_id,omitempty"`
	Status       MatchStatus `json:"status"`
	IsBye        bool        `json:"is_bye,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// HasTeam reports whether teamID occupies either side of the match.
func (m *Match) HasTeam(teamID int) bool {
	if m.Team1ID != nil && *m.Team1ID == teamID {
		return true
	}
	return m.Team2ID != nil && *m.Team2ID == teamID
}

// TeamsAssigned reports whether both sides are filled in.
func (m *Match) TeamsAssigned() bool {
	return m.Team1ID != nil && m.Team2ID != nil
}
