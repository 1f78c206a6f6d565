package models

// PoolStandingEntry is a derived row, recomputed on demand and never
// persisted. Rank is 1-based within the pool.
type PoolStandingEntry struct {
	TeamID        int `json:"team_id"`
	PoolID        int `json:"pool_id"`
	Rank          int `json:"rank"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	SetsWon       int `json:"sets_won"`
	SetsLost      int `json:"sets_lost"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
}

// PointDiff is points scored minus points allowed.
func (e PoolStandingEntry) PointDiff() int {
	return e.PointsFor - e.PointsAgainst
}

// SetsPlayed is the denominator of the set-ratio tiebreak.
func (e PoolStandingEntry) SetsPlayed() int {
	return e.SetsWon + e.SetsLost
}

// Advancer is a team that exits pool play into the bracket. PoolRank is
// its finishing rank inside its pool (1 = pool winner); Seed is its
// position in the bracket seeding order, 1 being the strongest.
type Advancer struct {
	TeamID   int `json:"team_id"`
	PoolID   int `json:"pool_id"`
	PoolRank int `json:"pool_rank"`
	Seed     int `json:"seed"`
}
