package models

// RoundDefinition describes one round of pool play: the two seed
// positions that play and the seed position that referees. Positions
// are 1-based within a pool of the template's size.
type RoundDefinition struct {
	Slot1   int `json:"slot1"`
	Slot2   int `json:"slot2"`
	RefSlot int `json:"ref_slot"`
}

// RoundTemplate is the round-robin layout for a given pool size. Every
// seed position 1..PoolSize must referee exactly once across the
// rounds, and no position may referee its own match.
type RoundTemplate struct {
	PoolSize int               `json:"pool_size"`
	Rounds   []RoundDefinition `json:"rounds"`
}
