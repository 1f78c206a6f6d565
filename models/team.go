package models

import "strings"

// Team is a grab-bag pair drawn for a single tournament. Player2 stays
// empty until the partner draw assigns it. PoolID, SeedInPool and
// SeedGlobal are nil until seeding places the team.
type Team struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2,omitempty"`
	PoolID       *int   `json:"pool_id,omitempty"`
	SeedInPool   *int   `json:"seed_in_pool,omitempty"`
	SeedGlobal   *int   `json:"seed_global,omitempty"`
}

// DisplayName falls back to the player pairing when no explicit name is set.
func (t *Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	players := []string{}
	if t.Player1 != "" {
		players = append(players, t.Player1)
	}
	if t.Player2 != "" {
		players = append(players, t.Player2)
	}
	if len(players) == 0 {
		return "TBD"
	}
	return strings.Join(players, " / ")
}

// RosterComplete reports whether the partner draw has filled both player slots.
func (t *Team) RosterComplete() bool {
	return t.Player1 != "" && t.Player2 != ""
}
