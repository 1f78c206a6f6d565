package services

import (
	"context"
	"errors"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"golang.org/x/sync/errgroup"
)

// scheduleData is one consistent snapshot of everything the engine
// needs to reason about a tournament.
type scheduleData struct {
	tournament *models.Tournament
	pools      []models.Pool
	teams      []models.Team
	matches    []models.Match
}

// loadScheduleData fetches the tournament, its pools, teams and matches
// in parallel.
func loadScheduleData(
	ctx context.Context,
	tournamentID int,
	tournaments repositories.TournamentRepository,
	pools repositories.PoolRepository,
	teams repositories.TeamRepository,
	matches repositories.MatchRepository,
) (*scheduleData, error) {
	data := &scheduleData{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tournament, err := tournaments.GetByID(gCtx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		data.tournament = tournament
		return nil
	})
	g.Go(func() error {
		list, err := pools.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		data.pools = list
		return nil
	})
	g.Go(func() error {
		list, err := teams.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		data.teams = list
		return nil
	})
	g.Go(func() error {
		list, err := matches.ListByTournament(gCtx, tournamentID, nil)
		if err != nil {
			return mapRepositoryError(err)
		}
		data.matches = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *scheduleData) engineParams(templates *engine.TemplateLibrary) engine.GenerateScheduleParams {
	return engine.GenerateScheduleParams{
		Tournament:      d.tournament,
		Pools:           d.pools,
		Teams:           d.teams,
		ExistingMatches: d.matches,
		Templates:       templates,
	}
}

// mapRepositoryError translates storage lookups into service errors.
func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPoolNotFound):
		return ErrPoolNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	}
	return err
}

// validateScores rejects negative values and draws. Rally scoring
// always produces a winner.
func validateScores(score1, score2 int) error {
	if score1 < 0 || score2 < 0 || score1 == score2 {
		return ErrScoreInvalid
	}
	return nil
}
