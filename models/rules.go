package models

// TiebreakCriterion names one link of the standings tiebreak chain.
type TiebreakCriterion string

const (
	TiebreakHeadToHead TiebreakCriterion = "head_to_head"
	TiebreakSetRatio   TiebreakCriterion = "set_ratio"
	TiebreakPointDiff  TiebreakCriterion = "point_diff"
	TiebreakRandom     TiebreakCriterion = "random"
)

// AdvancementRules configures standings resolution and how many teams
// leave each pool for the bracket.
type AdvancementRules struct {
	Tiebreakers      []TiebreakCriterion `json:"tiebreakers"`
	AdvancersPerPool int                 `json:"advancers_per_pool"`
}

// DefaultTiebreakOrder is the standard chain: direct results first,
// then set ratio, then point differential, with a random draw as the
// last resort.
func DefaultTiebreakOrder() []TiebreakCriterion {
	return []TiebreakCriterion{
		TiebreakHeadToHead,
		TiebreakSetRatio,
		TiebreakPointDiff,
		TiebreakRandom,
	}
}

func DefaultAdvancementRules() AdvancementRules {
	return AdvancementRules{
		Tiebreakers:      DefaultTiebreakOrder(),
		AdvancersPerPool: 2,
	}
}

// Normalized fills in defaults for zero-valued fields.
func (r AdvancementRules) Normalized() AdvancementRules {
	if len(r.Tiebreakers) == 0 {
		r.Tiebreakers = DefaultTiebreakOrder()
	}
	if r.AdvancersPerPool <= 0 {
		r.AdvancersPerPool = 2
	}
	return r
}
