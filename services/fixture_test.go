package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/export"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"github.com/LukasKanopka/GBVGrabBag-sub001/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires the full service stack against in-memory repositories,
// seeded with one tournament in the setup phase.
type fixture struct {
	tournaments repositories.TournamentRepository
	pools       repositories.PoolRepository
	teams       repositories.TeamRepository
	matches     repositories.MatchRepository

	schedule  ScheduleService
	standings StandingsService
	brackets  BracketService
	results   ResultService
	exports   ExportService

	tournamentID int
	exportDir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPools(t, 2, 4)
}

// newFixtureWithPools seeds poolCount pools of poolSize teams each.
// Teams get sequential IDs starting at 1, pool seeds by position and a
// global seed equal to their ID.
func newFixtureWithPools(t *testing.T, poolCount, poolSize int) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	tournaments := repositories.NewTournamentRepository()
	pools := repositories.NewPoolRepository()
	teams := repositories.NewTeamRepository()
	matches := repositories.NewMatchRepository()

	tournament := &models.Tournament{Name: "Grab Bag Open", Status: models.StatusSetup}
	require.NoError(t, tournaments.Create(ctx, tournament))

	teamID := 1
	for p := 0; p < poolCount; p++ {
		pool := &models.Pool{
			TournamentID: tournament.ID,
			Name:         fmt.Sprintf("Pool %c", 'A'+p),
			TargetSize:   poolSize,
		}
		require.NoError(t, pools.Create(ctx, pool))

		for seat := 1; seat <= poolSize; seat++ {
			team := &models.Team{
				ID:           teamID,
				TournamentID: tournament.ID,
				Name:         fmt.Sprintf("Team %d", teamID),
				Player1:      fmt.Sprintf("Player %d-A", teamID),
				Player2:      fmt.Sprintf("Player %d-B", teamID),
				PoolID:       utils.Ptr(pool.ID),
				SeedInPool:   utils.Ptr(seat),
				SeedGlobal:   utils.Ptr(teamID),
			}
			require.NoError(t, teams.Create(ctx, team))
			teamID++
		}
	}

	rules := models.DefaultAdvancementRules()
	standings := NewStandingsService(pools, teams, matches, rules, 1, logger)
	exportDir := t.TempDir()
	writer, err := export.NewLocalWriter(export.LocalWriterConfig{Dir: exportDir})
	require.NoError(t, err)

	return &fixture{
		tournaments:  tournaments,
		pools:        pools,
		teams:        teams,
		matches:      matches,
		schedule:     NewScheduleService(tournaments, pools, teams, matches, engine.DefaultTemplateLibrary(), logger),
		standings:    standings,
		brackets:     NewBracketService(tournaments, matches, standings, logger),
		results:      NewResultService(tournaments, matches, logger),
		exports:      NewExportService(tournaments, pools, teams, matches, standings, writer, logger),
		tournamentID: tournament.ID,
		exportDir:    exportDir,
	}
}

func (fx *fixture) generateSchedule(t *testing.T) []models.Match {
	t.Helper()
	matches, err := fx.schedule.GenerateSchedule(context.Background(), fx.tournamentID, false)
	require.NoError(t, err)
	return matches
}

// playPoolMatches records every pool match with the lower team ID
// winning 21-15, which yields fully deterministic standings.
func (fx *fixture) playPoolMatches(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	poolType := models.MatchTypePool
	matches, err := fx.matches.ListByTournament(ctx, fx.tournamentID, &poolType)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, m := range matches {
		score1, score2 := 21, 15
		if *m.Team2ID < *m.Team1ID {
			score1, score2 = score2, score1
		}
		_, err := fx.results.RecordPoolResult(ctx, m.ID, score1, score2)
		require.NoError(t, err)
	}
}

func (fx *fixture) generateBracket(t *testing.T) []models.Match {
	t.Helper()
	matches, err := fx.brackets.GenerateBracket(context.Background(), fx.tournamentID)
	require.NoError(t, err)
	return matches
}

func (fx *fixture) tournament(t *testing.T) *models.Tournament {
	t.Helper()
	tournament, err := fx.tournaments.GetByID(context.Background(), fx.tournamentID)
	require.NoError(t, err)
	return tournament
}

func (fx *fixture) bracketMatches(t *testing.T) []models.Match {
	t.Helper()
	bracketType := models.MatchTypeBracket
	matches, err := fx.matches.ListByTournament(context.Background(), fx.tournamentID, &bracketType)
	require.NoError(t, err)
	return matches
}

func matchAt(t *testing.T, matches []models.Match, round, index int) models.Match {
	t.Helper()
	for _, m := range matches {
		if m.RoundNumber == round && m.BracketIndex == index {
			return m
		}
	}
	t.Fatalf("no match at round %d index %d", round, index)
	return models.Match{}
}
