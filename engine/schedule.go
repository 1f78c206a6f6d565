package engine

import (
	"fmt"
	"sort"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/google/uuid"
)

// GenerateScheduleParams is the snapshot pool schedule generation works
// on. The caller fetches it in one consistent read and applies the
// returned matches in one write.
type GenerateScheduleParams struct {
	Tournament      *models.Tournament
	Pools           []models.Pool
	Teams           []models.Team
	ExistingMatches []models.Match
	Templates       *TemplateLibrary
}

// CheckPrerequisites reports everything blocking schedule generation:
// pools without a template for their team count, teams without a pool
// seed, and teams whose partner draw is incomplete. It never fails;
// an empty report means generation is safe.
func CheckPrerequisites(params GenerateScheduleParams) models.PrerequisiteReport {
	var report models.PrerequisiteReport

	byPool := teamsByPool(params.Teams)
	for _, team := range params.Teams {
		if team.PoolID == nil {
			teamID := team.ID
			report.Add(0, &teamID, fmt.Sprintf("team %q is not assigned to a pool", team.DisplayName()))
		}
	}

	for _, pool := range sortedPools(params.Pools) {
		poolTeams := byPool[pool.ID]
		if len(poolTeams) == 0 {
			report.Add(pool.ID, nil, fmt.Sprintf("pool %q has no teams assigned", pool.Name))
			continue
		}
		if params.Templates == nil {
			report.Add(pool.ID, nil, fmt.Sprintf("no round template registered for %d teams", len(poolTeams)))
		} else if _, err := params.Templates.Resolve(len(poolTeams)); err != nil {
			report.Add(pool.ID, nil, fmt.Sprintf("no round template registered for %d teams", len(poolTeams)))
		}
		for _, team := range poolTeams {
			if team.SeedInPool == nil {
				teamID := team.ID
				report.Add(pool.ID, &teamID, fmt.Sprintf("team %q has no pool seed", team.DisplayName()))
			}
			if !team.RosterComplete() {
				teamID := team.ID
				report.Add(pool.ID, &teamID, fmt.Sprintf("team %q is missing a drawn partner", team.DisplayName()))
			}
		}
	}
	return report
}

// BuildPoolSchedule materializes pool matches for every pool: each
// template round becomes one match, slots mapped to teams by their pool
// seed, the referee taken from the round's ref slot. Nothing is built
// unless every pool passes; bracket matches are never touched.
//
// With overwrite false, any existing pool match fails the call with
// ErrDuplicateSchedule. With overwrite true the caller is expected to
// delete the prior pool matches and persist the returned ones.
func BuildPoolSchedule(params GenerateScheduleParams, overwrite bool) ([]models.Match, error) {
	if hasPoolMatches(params.ExistingMatches) && !overwrite {
		return nil, fmt.Errorf("%w: tournament %d", ErrDuplicateSchedule, params.Tournament.ID)
	}

	if report := CheckPrerequisites(params); !report.OK() {
		return nil, &PrerequisitesError{Report: report}
	}

	byPool := teamsByPool(params.Teams)
	matches := make([]models.Match, 0)
	for _, pool := range sortedPools(params.Pools) {
		poolTeams := byPool[pool.ID]
		template, err := params.Templates.Resolve(len(poolTeams))
		if err != nil {
			return nil, err
		}
		bySeat, err := seatTeams(pool, poolTeams)
		if err != nil {
			return nil, err
		}

		poolID := pool.ID
		for i, round := range template.Rounds {
			team1 := bySeat[round.Slot1]
			team2 := bySeat[round.Slot2]
			referee := bySeat[round.RefSlot]
			matches = append(matches, models.Match{
				ID:           uuid.New(),
				TournamentID: params.Tournament.ID,
				Type:         models.MatchTypePool,
				PoolID:       &poolID,
				RoundNumber:  i + 1,
				Team1ID:      &team1,
				Team2ID:      &team2,
				RefereeID:    &referee,
				Status:       models.MatchScheduled,
			})
		}
	}
	return matches, nil
}

// seatTeams maps seed position -> team ID and rejects duplicate or
// gapped seeds before any match is produced.
func seatTeams(pool models.Pool, poolTeams []models.Team) (map[int]int, error) {
	size := len(poolTeams)
	bySeat := make(map[int]int, size)
	for _, team := range poolTeams {
		if team.SeedInPool == nil {
			return nil, fmt.Errorf("%w: pool %d: team %d has no seed", ErrInvalidSeedAssignment, pool.ID, team.ID)
		}
		seed := *team.SeedInPool
		if seed < 1 || seed > size {
			return nil, fmt.Errorf("%w: pool %d: seed %d outside 1..%d", ErrInvalidSeedAssignment, pool.ID, seed, size)
		}
		if other, taken := bySeat[seed]; taken {
			return nil, fmt.Errorf("%w: pool %d: teams %d and %d share seed %d", ErrInvalidSeedAssignment, pool.ID, other, team.ID, seed)
		}
		bySeat[seed] = team.ID
	}
	return bySeat, nil
}

func teamsByPool(teams []models.Team) map[int][]models.Team {
	byPool := make(map[int][]models.Team)
	for _, team := range teams {
		if team.PoolID == nil {
			continue
		}
		byPool[*team.PoolID] = append(byPool[*team.PoolID], team)
	}
	return byPool
}

func sortedPools(pools []models.Pool) []models.Pool {
	out := append([]models.Pool(nil), pools...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func hasPoolMatches(matches []models.Match) bool {
	for _, m := range matches {
		if m.Type == models.MatchTypePool {
			return true
		}
	}
	return false
}
