package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/google/uuid"
)

// BuildBracket materializes a single-elimination bracket from the
// seeded advancer order. The bracket size is the smallest power of two
// holding every advancer; the missing slots become byes for the top
// seeds. First-round pairings follow standard seeding (1 vs last,
// 2 vs second-last, recursively interleaved) so top seeds are maximally
// separated.
//
// A bye is a real match row with one team, completed immediately with
// that team as winner and pre-filled into its second-round slot. Every
// later round is created empty; the match at (round, index) is fed by
// the previous round's matches at index 2i and 2i+1, so winners are
// routed by arithmetic rather than stored links.
//
// The function is pure: tournament status and timestamp updates belong
// to the caller.
func BuildBracket(tournamentID int, advancers []models.Advancer) ([]models.Match, error) {
	n := len(advancers)
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d, need at least 2", ErrNotEnoughAdvancers, n)
	}

	seeded := append([]models.Advancer(nil), advancers...)
	sort.Slice(seeded, func(i, j int) bool { return seeded[i].Seed < seeded[j].Seed })

	size := bracketSize(n)
	totalRounds := int(math.Log2(float64(size)))

	matches := make([]models.Match, 0, size-1)
	for r := 1; r <= totalRounds; r++ {
		count := size >> uint(r)
		for i := 0; i < count; i++ {
			matches = append(matches, models.Match{
				ID:           uuid.New(),
				TournamentID: tournamentID,
				Type:         models.MatchTypeBracket,
				RoundNumber:  r,
				BracketIndex: i,
				Status:       models.MatchScheduled,
			})
		}
	}

	at := func(round, index int) *models.Match {
		offset := 0
		for r := 1; r < round; r++ {
			offset += size >> uint(r)
		}
		return &matches[offset+index]
	}

	for i, pair := range firstRoundPairs(size) {
		m := at(1, i)
		if pair[0] < n {
			teamID := seeded[pair[0]].TeamID
			m.Team1ID = &teamID
		}
		if pair[1] < n {
			teamID := seeded[pair[1]].TeamID
			m.Team2ID = &teamID
		}
	}

	// Seed-separation pairing always leaves the open slot opposite a
	// top seed, so a bye match has exactly one team present.
	for i := 0; i < size/2; i++ {
		m := at(1, i)
		if m.Team1ID != nil && m.Team2ID != nil {
			continue
		}
		advancing := m.Team1ID
		if advancing == nil {
			advancing = m.Team2ID
			m.Team1ID = advancing
			m.Team2ID = nil
		}
		if advancing == nil {
			continue
		}
		m.IsBye = true
		m.Status = models.MatchCompleted
		m.WinnerID = advancing
		if next, nextIndex, slot, ok := nextSlotOf(1, i, totalRounds); ok {
			target := at(next, nextIndex)
			if slot == 1 {
				target.Team1ID = advancing
			} else {
				target.Team2ID = advancing
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RoundNumber != matches[j].RoundNumber {
			return matches[i].RoundNumber < matches[j].RoundNumber
		}
		return matches[i].BracketIndex < matches[j].BracketIndex
	})
	return matches, nil
}

// bracketSize rounds up to the nearest power of two, so 5 advancers
// need a bracket of 8 and so on.
func bracketSize(count int) int {
	if count <= 0 {
		return 0
	}
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// firstRoundPairs lays out 0-based seed indexes for round one by the
// seed-separation expansion: start with seed 0 and repeatedly mirror
// each seed against its complement in a bracket of double the size.
// For 4 this yields {0,3},{1,2}; for 8, {0,7},{3,4},{1,6},{2,5}.
func firstRoundPairs(size int) [][2]int {
	if size == 0 {
		return [][2]int{}
	}

	seeds := []int{0}
	for len(seeds) < size {
		var next []int
		doubled := len(seeds) * 2
		for _, seed := range seeds {
			next = append(next, seed)
			next = append(next, (doubled-1)-seed)
		}
		seeds = next
	}

	pairs := make([][2]int, 0, size/2)
	for i := 0; i < len(seeds); i += 2 {
		pairs = append(pairs, [2]int{seeds[i], seeds[i+1]})
	}
	return pairs
}

// NextBracketSlot returns where the winner of the match at
// (round, index) goes: the next round at half the index, slot 1 or 2 by
// index parity. ok is false for the final.
func NextBracketSlot(round, index, totalRounds int) (nextRound, nextIndex, slot int, ok bool) {
	return nextSlotOf(round, index, totalRounds)
}

func nextSlotOf(round, index, totalRounds int) (int, int, int, bool) {
	if round >= totalRounds {
		return 0, 0, 0, false
	}
	return round + 1, index / 2, 1 + index%2, true
}

// TotalBracketRounds derives the round count from existing bracket
// matches; zero when none exist.
func TotalBracketRounds(matches []models.Match) int {
	total := 0
	for _, m := range matches {
		if m.Type == models.MatchTypeBracket && m.RoundNumber > total {
			total = m.RoundNumber
		}
	}
	return total
}
