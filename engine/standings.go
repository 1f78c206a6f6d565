package engine

import (
	"sort"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

// teamLine accumulates one team's pool results.
type teamLine struct {
	teamID        int
	wins          int
	losses        int
	setsWon       int
	setsLost      int
	pointsFor     int
	pointsAgainst int
}

// ComputeStandings ranks a pool from its completed matches. Teams are
// ordered by wins, with tied groups resolved by the rules' tiebreak
// chain; each still-tied subgroup falls through to the next criterion
// and an already-ordered split is never reopened. The result is
// deterministic for a given tie breaker: recomputing on the same match
// set yields the same ranking regardless of which team was recorded as
// team1 or team2.
//
// Teams without a completed match still appear, with zeroed tallies.
// A nil tie breaker falls back to a seeded one keyed by the pool ID.
func ComputeStandings(pool models.Pool, teams []models.Team, matches []models.Match, rules models.AdvancementRules, tb TieBreaker) []models.PoolStandingEntry {
	rules = rules.Normalized()
	if tb == nil {
		tb = NewSeededTieBreaker(int64(pool.ID))
	}

	lines := make(map[int]*teamLine)
	canonical := make([]int, 0, len(teams))
	for _, t := range teams {
		if t.PoolID == nil || *t.PoolID != pool.ID {
			continue
		}
		lines[t.ID] = &teamLine{teamID: t.ID}
		canonical = append(canonical, t.ID)
	}
	// Canonical team order keeps the outcome independent of input order.
	sort.Ints(canonical)

	completed := completedPoolMatches(pool.ID, matches)
	for _, m := range completed {
		line1, ok1 := lines[*m.Team1ID]
		line2, ok2 := lines[*m.Team2ID]
		if !ok1 || !ok2 {
			// Result references a team no longer seeded in this pool.
			continue
		}
		s1, s2 := *m.Score1, *m.Score2
		line1.pointsFor += s1
		line1.pointsAgainst += s2
		line2.pointsFor += s2
		line2.pointsAgainst += s1

		// Pool matches are best-of-one, so each completed match
		// contributes exactly one set outcome to each side.
		if *m.WinnerID == line1.teamID {
			line1.wins++
			line1.setsWon++
			line2.losses++
			line2.setsLost++
		} else {
			line2.wins++
			line2.setsWon++
			line1.losses++
			line1.setsLost++
		}
	}

	ranked := rankTeams(canonical, lines, completed, rules.Tiebreakers, tb)

	entries := make([]models.PoolStandingEntry, 0, len(ranked))
	for i, id := range ranked {
		line := lines[id]
		entries = append(entries, models.PoolStandingEntry{
			TeamID:        id,
			PoolID:        pool.ID,
			Rank:          i + 1,
			Wins:          line.wins,
			Losses:        line.losses,
			SetsWon:       line.setsWon,
			SetsLost:      line.setsLost,
			PointsFor:     line.pointsFor,
			PointsAgainst: line.pointsAgainst,
		})
	}
	return entries
}

// completedPoolMatches filters the matches that may count toward a
// pool's standings: pool matches of that pool with both teams, both
// scores and a winner recorded.
func completedPoolMatches(poolID int, matches []models.Match) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Type != models.MatchTypePool || m.PoolID == nil || *m.PoolID != poolID {
			continue
		}
		if m.Status != models.MatchCompleted {
			continue
		}
		if m.Team1ID == nil || m.Team2ID == nil || m.Score1 == nil || m.Score2 == nil || m.WinnerID == nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// rankTeams groups teams by win count, high first, and resolves each
// tied group with the chain.
func rankTeams(canonical []int, lines map[int]*teamLine, matches []models.Match, chain []models.TiebreakCriterion, tb TieBreaker) []int {
	byWins := make(map[int][]int)
	winCounts := make([]int, 0)
	for _, id := range canonical {
		w := lines[id].wins
		if _, seen := byWins[w]; !seen {
			winCounts = append(winCounts, w)
		}
		byWins[w] = append(byWins[w], id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(winCounts)))

	ranked := make([]int, 0, len(canonical))
	for _, w := range winCounts {
		ranked = append(ranked, resolveGroup(byWins[w], lines, matches, chain, 0, tb)...)
	}
	return ranked
}

// resolveGroup orders one tied group. The criterion at depth splits the
// group into subgroups; subgroups still tied fall through to the next
// criterion. The chain is finite, so resolution takes at most
// len(chain) passes.
func resolveGroup(group []int, lines map[int]*teamLine, matches []models.Match, chain []models.TiebreakCriterion, depth int, tb TieBreaker) []int {
	if len(group) <= 1 {
		return group
	}
	if depth >= len(chain) {
		// Chain exhausted with a tie left: keep canonical order.
		return group
	}

	criterion := chain[depth]
	if criterion == models.TiebreakRandom {
		return tb.Order(group)
	}

	keys := criterionKeys(criterion, group, lines, matches)

	sorted := append([]int(nil), group...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareKeys(keys[sorted[i]], keys[sorted[j]]) > 0
	})

	resolved := make([]int, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && compareKeys(keys[sorted[start]], keys[sorted[end]]) == 0 {
			end++
		}
		resolved = append(resolved, resolveGroup(sorted[start:end], lines, matches, chain, depth+1, tb)...)
		start = end
	}
	return resolved
}

// tiebreakKey is a rational comparison key. A zero denominator marks an
// undefined ratio, which ranks below any defined value.
type tiebreakKey struct {
	num int
	den int
}

// compareKeys returns >0 when a outranks b, <0 when b outranks a, and 0
// on an exact tie. Ratios are compared by cross-multiplication to avoid
// float equality trouble.
func compareKeys(a, b tiebreakKey) int {
	switch {
	case a.den == 0 && b.den == 0:
		return 0
	case a.den == 0:
		return -1
	case b.den == 0:
		return 1
	}
	left := a.num * b.den
	right := b.num * a.den
	switch {
	case left > right:
		return 1
	case left < right:
		return -1
	}
	return 0
}

func criterionKeys(criterion models.TiebreakCriterion, group []int, lines map[int]*teamLine, matches []models.Match) map[int]tiebreakKey {
	keys := make(map[int]tiebreakKey, len(group))
	for _, id := range group {
		keys[id] = tiebreakKey{den: 1}
	}

	switch criterion {
	case models.TiebreakHeadToHead:
		// Net wins minus losses, counting only matches played among the
		// tied subset itself.
		inGroup := make(map[int]bool, len(group))
		for _, id := range group {
			inGroup[id] = true
		}
		for _, m := range matches {
			if !inGroup[*m.Team1ID] || !inGroup[*m.Team2ID] {
				continue
			}
			winner := *m.WinnerID
			loser := *m.Team1ID
			if loser == winner {
				loser = *m.Team2ID
			}
			k := keys[winner]
			k.num++
			keys[winner] = k
			k = keys[loser]
			k.num--
			keys[loser] = k
		}
	case models.TiebreakSetRatio:
		for _, id := range group {
			line := lines[id]
			keys[id] = tiebreakKey{num: line.setsWon, den: line.setsWon + line.setsLost}
		}
	case models.TiebreakPointDiff:
		for _, id := range group {
			line := lines[id]
			keys[id] = tiebreakKey{num: line.pointsFor - line.pointsAgainst, den: 1}
		}
	}
	return keys
}
