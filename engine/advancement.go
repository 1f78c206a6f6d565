package engine

import (
	"fmt"
	"sort"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

// SelectAdvancers picks the top finishers of every pool and orders them
// into the bracket seeding: all pool winners first, then all
// runners-up, and so on. Inside each rank the pools are ordered by
// standing quality (wins, then set ratio, then point differential),
// with seed_global breaking exact ties, lowest first. Unset
// seed_global sorts last; the team ID is the final deterministic key.
//
// Seeds are assigned 1..N over the resulting order. Fails with
// ErrStandingsIncomplete when a pool's standings hold fewer entries
// than the configured advancers per pool.
func SelectAdvancers(pools []models.Pool, standingsByPool map[int][]models.PoolStandingEntry, teams []models.Team, rules models.AdvancementRules) ([]models.Advancer, error) {
	rules = rules.Normalized()

	globalSeeds := make(map[int]*int, len(teams))
	for _, t := range teams {
		globalSeeds[t.ID] = t.SeedGlobal
	}

	perRank := make([][]advancerCandidate, rules.AdvancersPerPool)
	for _, pool := range sortedPools(pools) {
		entries := standingsByPool[pool.ID]
		if len(entries) < rules.AdvancersPerPool {
			return nil, fmt.Errorf("%w: pool %d ranks %d teams, need %d",
				ErrStandingsIncomplete, pool.ID, len(entries), rules.AdvancersPerPool)
		}
		for rank := 1; rank <= rules.AdvancersPerPool; rank++ {
			perRank[rank-1] = append(perRank[rank-1], advancerCandidate{
				entry:      entries[rank-1],
				seedGlobal: globalSeeds[entries[rank-1].TeamID],
			})
		}
	}

	advancers := make([]models.Advancer, 0, rules.AdvancersPerPool*len(pools))
	for rank, candidates := range perRank {
		sort.SliceStable(candidates, func(i, j int) bool {
			return betterCandidate(candidates[i], candidates[j])
		})
		for _, c := range candidates {
			advancers = append(advancers, models.Advancer{
				TeamID:   c.entry.TeamID,
				PoolID:   c.entry.PoolID,
				PoolRank: rank + 1,
				Seed:     len(advancers) + 1,
			})
		}
	}
	return advancers, nil
}

type advancerCandidate struct {
	entry      models.PoolStandingEntry
	seedGlobal *int
}

func betterCandidate(a, b advancerCandidate) bool {
	if a.entry.Wins != b.entry.Wins {
		return a.entry.Wins > b.entry.Wins
	}
	aRatio := tiebreakKey{num: a.entry.SetsWon, den: a.entry.SetsPlayed()}
	bRatio := tiebreakKey{num: b.entry.SetsWon, den: b.entry.SetsPlayed()}
	if c := compareKeys(aRatio, bRatio); c != 0 {
		return c > 0
	}
	if a.entry.PointDiff() != b.entry.PointDiff() {
		return a.entry.PointDiff() > b.entry.PointDiff()
	}
	if c := compareGlobalSeeds(a.seedGlobal, b.seedGlobal); c != 0 {
		return c < 0
	}
	return a.entry.TeamID < b.entry.TeamID
}

// compareGlobalSeeds orders lower seeds first; a missing seed sorts
// after any assigned one.
func compareGlobalSeeds(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
