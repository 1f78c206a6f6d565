package models

// PrerequisiteItem names one thing blocking schedule generation.
// TeamID is nil for pool-level problems such as a missing template.
type PrerequisiteItem struct {
	PoolID int    `json:"pool_id"`
	TeamID *int   `json:"team_id,omitempty"`
	Reason string `json:"reason"`
}

// PrerequisiteReport lists everything that must be fixed before a pool
// schedule can be generated. An empty report means generation is safe.
type PrerequisiteReport struct {
	Items []PrerequisiteItem `json:"items"`
}

func (r PrerequisiteReport) OK() bool {
	return len(r.Items) == 0
}

func (r *PrerequisiteReport) Add(poolID int, teamID *int, reason string) {
	r.Items = append(r.Items, PrerequisiteItem{PoolID: poolID, TeamID: teamID, Reason: reason})
}
