package engine

import (
	"testing"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standingEntry(teamID, poolID, rank, wins int) models.PoolStandingEntry {
	losses := 3 - wins
	return models.PoolStandingEntry{
		TeamID:        teamID,
		PoolID:        poolID,
		Rank:          rank,
		Wins:          wins,
		Losses:        losses,
		SetsWon:       wins,
		SetsLost:      losses,
		PointsFor:     21 * wins,
		PointsAgainst: 21 * losses,
	}
}

func TestSelectAdvancersWinnersBeforeRunnersUp(t *testing.T) {
	pools := []models.Pool{
		{ID: 1, TournamentID: 1, Name: "Pool A", TargetSize: 4},
		{ID: 2, TournamentID: 1, Name: "Pool B", TargetSize: 4},
	}
	standings := map[int][]models.PoolStandingEntry{
		1: {
			standingEntry(11, 1, 1, 3),
			standingEntry(12, 1, 2, 2),
			standingEntry(13, 1, 3, 1),
			standingEntry(14, 1, 4, 0),
		},
		2: {
			standingEntry(21, 2, 1, 3),
			standingEntry(22, 2, 2, 2),
			standingEntry(23, 2, 3, 1),
			standingEntry(24, 2, 4, 0),
		},
	}
	teams := append(seededPool(1, 11, 4), seededPool(2, 21, 4)...)

	advancers, err := SelectAdvancers(pools, standings, teams, models.DefaultAdvancementRules())
	require.NoError(t, err)
	require.Len(t, advancers, 4)

	// Equal records inside a rank, so seed_global (the team ID here)
	// orders pool A's qualifier ahead of pool B's.
	assert.Equal(t, []models.Advancer{
		{TeamID: 11, PoolID: 1, PoolRank: 1, Seed: 1},
		{TeamID: 21, PoolID: 2, PoolRank: 1, Seed: 2},
		{TeamID: 12, PoolID: 1, PoolRank: 2, Seed: 3},
		{TeamID: 22, PoolID: 2, PoolRank: 2, Seed: 4},
	}, advancers)
}

func TestSelectAdvancersOrdersByStandingQuality(t *testing.T) {
	pools := []models.Pool{
		{ID: 1, TournamentID: 1, Name: "Pool A", TargetSize: 4},
		{ID: 2, TournamentID: 1, Name: "Pool B", TargetSize: 4},
	}
	// Both winners went 3-0 with perfect set ratios, but pool B's winner
	// carried the larger point differential and must take seed 1.
	weakWinner := standingEntry(11, 1, 1, 3)
	weakWinner.PointsAgainst = 45
	strongWinner := standingEntry(21, 2, 1, 3)
	strongWinner.PointsAgainst = 20

	standings := map[int][]models.PoolStandingEntry{
		1: {weakWinner, standingEntry(12, 1, 2, 2)},
		2: {strongWinner, standingEntry(22, 2, 2, 2)},
	}
	teams := append(seededPool(1, 11, 4), seededPool(2, 21, 4)...)

	advancers, err := SelectAdvancers(pools, standings, teams, models.DefaultAdvancementRules())
	require.NoError(t, err)

	assert.Equal(t, 21, advancers[0].TeamID)
	assert.Equal(t, 11, advancers[1].TeamID)
	assert.Equal(t, 1, advancers[0].Seed)
	assert.Equal(t, 2, advancers[1].Seed)
}

func TestSelectAdvancersMissingGlobalSeedSortsLast(t *testing.T) {
	pools := []models.Pool{
		{ID: 1, TournamentID: 1, Name: "Pool A", TargetSize: 3},
		{ID: 2, TournamentID: 1, Name: "Pool B", TargetSize: 3},
	}
	standings := map[int][]models.PoolStandingEntry{
		1: {standingEntry(11, 1, 1, 3), standingEntry(12, 1, 2, 2)},
		2: {standingEntry(21, 2, 1, 3), standingEntry(22, 2, 2, 2)},
	}
	teams := append(seededPool(1, 11, 3), seededPool(2, 21, 3)...)
	// Strip pool A's winner of its global seed; with otherwise equal
	// records it must drop behind pool B's winner.
	teams[0].SeedGlobal = nil

	advancers, err := SelectAdvancers(pools, standings, teams, models.DefaultAdvancementRules())
	require.NoError(t, err)

	assert.Equal(t, 21, advancers[0].TeamID)
	assert.Equal(t, 11, advancers[1].TeamID)
}

func TestSelectAdvancersThreePools(t *testing.T) {
	pools := []models.Pool{
		{ID: 3, TournamentID: 1, Name: "Pool C", TargetSize: 4},
		{ID: 1, TournamentID: 1, Name: "Pool A", TargetSize: 4},
		{ID: 2, TournamentID: 1, Name: "Pool B", TargetSize: 4},
	}
	standings := map[int][]models.PoolStandingEntry{
		1: {standingEntry(11, 1, 1, 3), standingEntry(12, 1, 2, 2)},
		2: {standingEntry(21, 2, 1, 3), standingEntry(22, 2, 2, 2)},
		3: {standingEntry(31, 3, 1, 3), standingEntry(32, 3, 2, 2)},
	}
	teams := append(seededPool(1, 11, 4), seededPool(2, 21, 4)...)
	teams = append(teams, seededPool(3, 31, 4)...)

	advancers, err := SelectAdvancers(pools, standings, teams, models.DefaultAdvancementRules())
	require.NoError(t, err)
	require.Len(t, advancers, 6)

	for i, a := range advancers {
		assert.Equal(t, i+1, a.Seed)
	}
	assert.Equal(t, []int{11, 21, 31, 12, 22, 32}, []int{
		advancers[0].TeamID, advancers[1].TeamID, advancers[2].TeamID,
		advancers[3].TeamID, advancers[4].TeamID, advancers[5].TeamID,
	})
	for _, a := range advancers[:3] {
		assert.Equal(t, 1, a.PoolRank)
	}
	for _, a := range advancers[3:] {
		assert.Equal(t, 2, a.PoolRank)
	}
}

func TestSelectAdvancersIncompleteStandings(t *testing.T) {
	pools := []models.Pool{{ID: 1, TournamentID: 1, Name: "Pool A", TargetSize: 4}}
	standings := map[int][]models.PoolStandingEntry{
		1: {standingEntry(11, 1, 1, 3)},
	}

	rules := models.AdvancementRules{AdvancersPerPool: 2, Tiebreakers: models.DefaultTiebreakOrder()}
	_, err := SelectAdvancers(pools, standings, seededPool(1, 11, 4), rules)
	assert.ErrorIs(t, err, ErrStandingsIncomplete)
}

func TestCompareGlobalSeeds(t *testing.T) {
	assert.Equal(t, 0, compareGlobalSeeds(nil, nil))
	assert.Equal(t, 1, compareGlobalSeeds(nil, utils.Ptr(3)))
	assert.Equal(t, -1, compareGlobalSeeds(utils.Ptr(3), nil))
	assert.Equal(t, -1, compareGlobalSeeds(utils.Ptr(1), utils.Ptr(2)))
	assert.Equal(t, 1, compareGlobalSeeds(utils.Ptr(5), utils.Ptr(2)))
	assert.Equal(t, 0, compareGlobalSeeds(utils.Ptr(4), utils.Ptr(4)))
}
