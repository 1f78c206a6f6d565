package engine

import (
	"fmt"
	"testing"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advancerList(teamIDs ...int) []models.Advancer {
	advancers := make([]models.Advancer, 0, len(teamIDs))
	for i, id := range teamIDs {
		advancers = append(advancers, models.Advancer{TeamID: id, PoolID: 1 + i%2, Seed: i + 1})
	}
	return advancers
}

func bracketMatchAt(t *testing.T, matches []models.Match, round, index int) models.Match {
	t.Helper()
	for _, m := range matches {
		if m.RoundNumber == round && m.BracketIndex == index {
			return m
		}
	}
	t.Fatalf("no bracket match at round %d index %d", round, index)
	return models.Match{}
}

func TestBracketSize(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 6: 8, 7: 8, 8: 8, 9: 16}
	for count, want := range cases {
		assert.Equal(t, want, bracketSize(count), "count %d", count)
	}
}

func TestFirstRoundPairs(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 1}}, firstRoundPairs(2))
	assert.Equal(t, [][2]int{{0, 3}, {1, 2}}, firstRoundPairs(4))
	assert.Equal(t, [][2]int{{0, 7}, {3, 4}, {1, 6}, {2, 5}}, firstRoundPairs(8))
}

func TestFirstRoundPairsSeparationProperty(t *testing.T) {
	// In every bracket size, each pair must sum to size-1 so the top
	// seed always meets the weakest possible opponent.
	for _, size := range []int{2, 4, 8, 16, 32} {
		pairs := firstRoundPairs(size)
		require.Len(t, pairs, size/2, "size %d", size)
		seen := make(map[int]bool, size)
		for _, p := range pairs {
			assert.Equal(t, size-1, p[0]+p[1], "size %d pair %v", size, p)
			seen[p[0]] = true
			seen[p[1]] = true
		}
		assert.Len(t, seen, size, "size %d must place every seed exactly once", size)
		assert.Equal(t, 0, pairs[0][0], "top seed opens the bracket")
	}
}

func TestBuildBracketFourAdvancers(t *testing.T) {
	matches, err := BuildBracket(1, advancerList(101, 102, 103, 104))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	semiOne := bracketMatchAt(t, matches, 1, 0)
	require.NotNil(t, semiOne.Team1ID)
	require.NotNil(t, semiOne.Team2ID)
	assert.Equal(t, 101, *semiOne.Team1ID)
	assert.Equal(t, 104, *semiOne.Team2ID)

	semiTwo := bracketMatchAt(t, matches, 1, 1)
	require.NotNil(t, semiTwo.Team1ID)
	require.NotNil(t, semiTwo.Team2ID)
	assert.Equal(t, 102, *semiTwo.Team1ID)
	assert.Equal(t, 103, *semiTwo.Team2ID)

	final := bracketMatchAt(t, matches, 2, 0)
	assert.Nil(t, final.Team1ID)
	assert.Nil(t, final.Team2ID)
	assert.Equal(t, models.MatchScheduled, final.Status)

	for _, m := range matches {
		assert.False(t, m.IsBye)
		assert.Equal(t, models.MatchTypeBracket, m.Type)
		assert.Equal(t, 1, m.TournamentID)
	}
}

func TestBuildBracketSixAdvancersByes(t *testing.T) {
	matches, err := BuildBracket(1, advancerList(1, 2, 3, 4, 5, 6))
	require.NoError(t, err)
	require.Len(t, matches, 7)

	byes := make([]models.Match, 0)
	for _, m := range matches {
		if m.IsBye {
			byes = append(byes, m)
		}
	}
	require.Len(t, byes, 2, "eight slots minus six teams leaves two byes")

	// The two byes belong to seeds 1 and 2 and are already decided.
	for _, bye := range byes {
		assert.Equal(t, 1, bye.RoundNumber)
		assert.Equal(t, models.MatchCompleted, bye.Status)
		require.NotNil(t, bye.Team1ID)
		assert.Nil(t, bye.Team2ID)
		require.NotNil(t, bye.WinnerID)
		assert.Equal(t, *bye.Team1ID, *bye.WinnerID)
	}
	assert.Equal(t, 1, *bracketMatchAt(t, matches, 1, 0).WinnerID)
	assert.Equal(t, 2, *bracketMatchAt(t, matches, 1, 2).WinnerID)

	// Real first-round matches pair 4v5 and 3v6.
	quarterTwo := bracketMatchAt(t, matches, 1, 1)
	assert.Equal(t, 4, *quarterTwo.Team1ID)
	assert.Equal(t, 5, *quarterTwo.Team2ID)
	quarterFour := bracketMatchAt(t, matches, 1, 3)
	assert.Equal(t, 3, *quarterFour.Team1ID)
	assert.Equal(t, 6, *quarterFour.Team2ID)

	// Bye winners are pre-filled into their semifinal slots.
	semiOne := bracketMatchAt(t, matches, 2, 0)
	require.NotNil(t, semiOne.Team1ID)
	assert.Equal(t, 1, *semiOne.Team1ID)
	assert.Nil(t, semiOne.Team2ID)
	assert.Equal(t, models.MatchScheduled, semiOne.Status)

	semiTwo := bracketMatchAt(t, matches, 2, 1)
	require.NotNil(t, semiTwo.Team1ID)
	assert.Equal(t, 2, *semiTwo.Team1ID)
	assert.Nil(t, semiTwo.Team2ID)

	final := bracketMatchAt(t, matches, 3, 0)
	assert.Nil(t, final.Team1ID)
	assert.Nil(t, final.Team2ID)
}

func TestBuildBracketFiveAdvancers(t *testing.T) {
	matches, err := BuildBracket(1, advancerList(1, 2, 3, 4, 5))
	require.NoError(t, err)
	require.Len(t, matches, 7)

	byeWinners := make([]int, 0)
	for _, m := range matches {
		if m.IsBye {
			byeWinners = append(byeWinners, *m.WinnerID)
		}
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, byeWinners)

	// The only contested first-round match is 4 vs 5.
	played := bracketMatchAt(t, matches, 1, 1)
	assert.False(t, played.IsBye)
	assert.Equal(t, 4, *played.Team1ID)
	assert.Equal(t, 5, *played.Team2ID)
}

func TestBuildBracketTooFewAdvancers(t *testing.T) {
	for _, count := range []int{0, 1} {
		t.Run(fmt.Sprintf("%d advancers", count), func(t *testing.T) {
			ids := make([]int, count)
			for i := range ids {
				ids[i] = i + 1
			}
			_, err := BuildBracket(1, advancerList(ids...))
			assert.ErrorIs(t, err, ErrNotEnoughAdvancers)
		})
	}
}

func TestBuildBracketUnsortedInput(t *testing.T) {
	shuffled := []models.Advancer{
		{TeamID: 103, PoolID: 1, Seed: 3},
		{TeamID: 101, PoolID: 1, Seed: 1},
		{TeamID: 104, PoolID: 2, Seed: 4},
		{TeamID: 102, PoolID: 2, Seed: 2},
	}

	matches, err := BuildBracket(1, shuffled)
	require.NoError(t, err)
	assert.Equal(t, 101, *bracketMatchAt(t, matches, 1, 0).Team1ID)
	assert.Equal(t, 104, *bracketMatchAt(t, matches, 1, 0).Team2ID)
}

func TestNextBracketSlot(t *testing.T) {
	cases := []struct {
		round, index, total            int
		wantRound, wantIndex, wantSlot int
		wantOK                         bool
	}{
		{round: 1, index: 0, total: 3, wantRound: 2, wantIndex: 0, wantSlot: 1, wantOK: true},
		{round: 1, index: 1, total: 3, wantRound: 2, wantIndex: 0, wantSlot: 2, wantOK: true},
		{round: 1, index: 2, total: 3, wantRound: 2, wantIndex: 1, wantSlot: 1, wantOK: true},
		{round: 1, index: 3, total: 3, wantRound: 2, wantIndex: 1, wantSlot: 2, wantOK: true},
		{round: 2, index: 1, total: 3, wantRound: 3, wantIndex: 0, wantSlot: 2, wantOK: true},
		{round: 3, index: 0, total: 3, wantOK: false},
		{round: 1, index: 0, total: 1, wantOK: false},
	}
	for _, tc := range cases {
		round, index, slot, ok := NextBracketSlot(tc.round, tc.index, tc.total)
		assert.Equal(t, tc.wantOK, ok, "round %d index %d", tc.round, tc.index)
		if tc.wantOK {
			assert.Equal(t, tc.wantRound, round)
			assert.Equal(t, tc.wantIndex, index)
			assert.Equal(t, tc.wantSlot, slot)
		}
	}
}

func TestTotalBracketRounds(t *testing.T) {
	matches, err := BuildBracket(1, advancerList(1, 2, 3, 4, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, 3, TotalBracketRounds(matches))

	assert.Equal(t, 0, TotalBracketRounds(nil))

	pool := []models.Match{{Type: models.MatchTypePool, RoundNumber: 5}}
	assert.Equal(t, 0, TotalBracketRounds(pool))
}
