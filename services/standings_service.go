package services

import (
	"context"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StandingsService computes pool rankings and the bracket qualifiers
// derived from them. Standings are always computed fresh from the
// recorded results, never stored.
type StandingsService interface {
	PoolStandings(ctx context.Context, poolID int) ([]models.PoolStandingEntry, error)
	TournamentStandings(ctx context.Context, tournamentID int) (map[int][]models.PoolStandingEntry, error)
	Advancers(ctx context.Context, tournamentID int) ([]models.Advancer, error)
}

type standingsService struct {
	poolRepo     repositories.PoolRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	rules        models.AdvancementRules
	tiebreakSeed int64
	logger       *zap.Logger
}

// NewStandingsService wires the standings reader. tiebreakSeed feeds the
// last-resort draw; each pool derives its own stream from it, so reruns
// of the same tournament produce the same ranking.
func NewStandingsService(
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	rules models.AdvancementRules,
	tiebreakSeed int64,
	logger *zap.Logger,
) StandingsService {
	return &standingsService{
		poolRepo:     poolRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		rules:        rules,
		tiebreakSeed: tiebreakSeed,
		logger:       logger,
	}
}

func (s *standingsService) PoolStandings(ctx context.Context, poolID int) ([]models.PoolStandingEntry, error) {
	pool, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	teams, err := s.teamRepo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	tb := engine.NewSeededTieBreaker(s.tiebreakSeed + int64(pool.ID))
	return engine.ComputeStandings(*pool, teams, matches, s.rules, tb), nil
}

func (s *standingsService) TournamentStandings(ctx context.Context, tournamentID int) (map[int][]models.PoolStandingEntry, error) {
	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	results := make([][]models.PoolStandingEntry, len(pools))
	g, gCtx := errgroup.WithContext(ctx)
	for i, pool := range pools {
		g.Go(func() error {
			entries, err := s.PoolStandings(gCtx, pool.ID)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byPool := make(map[int][]models.PoolStandingEntry, len(pools))
	for i, pool := range pools {
		byPool[pool.ID] = results[i]
	}
	return byPool, nil
}

func (s *standingsService) Advancers(ctx context.Context, tournamentID int) ([]models.Advancer, error) {
	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	standings, err := s.TournamentStandings(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	advancers, err := engine.SelectAdvancers(pools, standings, teams, s.rules)
	if err != nil {
		return nil, err
	}
	s.logger.Info("advancers selected",
		zap.Int("tournament_id", tournamentID),
		zap.Int("pools", len(pools)),
		zap.Int("advancers", len(advancers)))
	return advancers, nil
}
