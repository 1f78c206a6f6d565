package services

import (
	"context"
	"fmt"
	"time"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"go.uber.org/zap"
)

// BracketService generates and rebuilds the single-elimination bracket.
// Once any bracket match has a result the bracket is locked: a rebuild
// would orphan results already on the books, so it is refused outright.
type BracketService interface {
	// GenerateBracket seeds the bracket from final pool standings.
	// Requires complete pool play and no existing bracket; moves the
	// tournament into the bracket phase.
	GenerateBracket(ctx context.Context, tournamentID int) ([]models.Match, error)

	// RebuildBracket discards the current bracket and regenerates it
	// from (possibly corrected) pool results. Fails with
	// engine.ErrRebuildBlocked once bracket play has started, leaving
	// everything untouched.
	RebuildBracket(ctx context.Context, tournamentID int) ([]models.Match, error)

	// BracketState reports where the bracket lifecycle stands.
	BracketState(ctx context.Context, tournamentID int) (engine.BracketState, error)
}

type bracketService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	standings      StandingsService
	logger         *zap.Logger
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	logger *zap.Logger,
) BracketService {
	return &bracketService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		logger:         logger,
	}
}

func (s *bracketService) GenerateBracket(ctx context.Context, tournamentID int) ([]models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	existing, err := s.listBracketMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %d matches on record", ErrBracketExists, len(existing))
	}
	if !tournament.CanTransitionTo(models.StatusBracket) {
		return nil, fmt.Errorf("%w: cannot enter bracket phase from %s",
			ErrInvalidStatusTransition, tournament.Status)
	}
	if err := s.ensurePoolPlayComplete(ctx, tournamentID); err != nil {
		return nil, err
	}

	stored, err := s.buildAndStore(ctx, tournamentID, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tournament.Status = models.StatusBracket
	tournament.BracketGeneratedAt = &now
	tournament.BracketStarted = false
	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("bracket generated",
		zap.Int("tournament_id", tournamentID),
		zap.Int("matches", len(stored)),
		zap.Int("byes", countByes(stored)))
	return stored, nil
}

func (s *bracketService) RebuildBracket(ctx context.Context, tournamentID int) ([]models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	existing, err := s.listBracketMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	state := engine.BracketStateOf(tournament, len(existing) > 0)
	if err := engine.EnsureRebuildAllowed(state); err != nil {
		s.logger.Warn("bracket rebuild refused",
			zap.Int("tournament_id", tournamentID),
			zap.String("state", string(state)))
		return nil, err
	}
	if state == engine.BracketNotGenerated {
		return s.GenerateBracket(ctx, tournamentID)
	}

	stored, err := s.buildAndStore(ctx, tournamentID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tournament.BracketGeneratedAt = &now
	tournament.BracketStarted = false
	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("bracket rebuilt",
		zap.Int("tournament_id", tournamentID),
		zap.Int("discarded", len(existing)),
		zap.Int("matches", len(stored)))
	return stored, nil
}

func (s *bracketService) BracketState(ctx context.Context, tournamentID int) (engine.BracketState, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	existing, err := s.listBracketMatches(ctx, tournamentID)
	if err != nil {
		return "", err
	}
	return engine.BracketStateOf(tournament, len(existing) > 0), nil
}

func (s *bracketService) listBracketMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	bracketType := models.MatchTypeBracket
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, &bracketType)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return matches, nil
}

// ensurePoolPlayComplete verifies a pool schedule exists and every pool
// match has a final result.
func (s *bracketService) ensurePoolPlayComplete(ctx context.Context, tournamentID int) error {
	poolType := models.MatchTypePool
	poolMatches, err := s.matchRepo.ListByTournament(ctx, tournamentID, &poolType)
	if err != nil {
		return mapRepositoryError(err)
	}
	if len(poolMatches) == 0 {
		return fmt.Errorf("%w: no pool matches scheduled", ErrPoolPlayIncomplete)
	}
	unplayed := 0
	for _, m := range poolMatches {
		if m.Status != models.MatchCompleted {
			unplayed++
		}
	}
	if unplayed > 0 {
		return fmt.Errorf("%w: %d of %d pool matches unplayed",
			ErrPoolPlayIncomplete, unplayed, len(poolMatches))
	}
	return nil
}

// buildAndStore regenerates the bracket from current standings. The
// build happens before any delete, so a failed rebuild keeps the old
// bracket intact.
func (s *bracketService) buildAndStore(ctx context.Context, tournamentID int, replace bool) ([]models.Match, error) {
	advancers, err := s.standings.Advancers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	built, err := engine.BuildBracket(tournamentID, advancers)
	if err != nil {
		return nil, err
	}
	if replace {
		if _, err := s.matchRepo.DeleteByTournamentAndType(ctx, tournamentID, models.MatchTypeBracket); err != nil {
			return nil, mapRepositoryError(err)
		}
	}
	stored, err := s.matchRepo.CreateBatch(ctx, built)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return stored, nil
}

func countByes(matches []models.Match) int {
	count := 0
	for _, m := range matches {
		if m.IsBye {
			count++
		}
	}
	return count
}
