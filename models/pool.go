package models

// Pool is a round-robin mini-group of seeded teams.
type Pool struct {
	ID           int    `json:"id"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	TargetSize   int    `json:"target_size"`
}
