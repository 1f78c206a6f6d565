package services

import (
	"context"
	"fmt"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResultService records match results. Pool results stay editable while
// pool play runs, since standings are recomputed on demand. The first
// bracket result (or a match going live) flips the tournament's
// bracket-started latch, which permanently blocks bracket rebuilds.
type ResultService interface {
	RecordPoolResult(ctx context.Context, matchID uuid.UUID, score1, score2 int) (*models.Match, error)
	RecordBracketResult(ctx context.Context, matchID uuid.UUID, score1, score2 int) (*models.Match, error)
	MarkBracketMatchLive(ctx context.Context, matchID uuid.UUID) (*models.Match, error)
}

type resultService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	logger         *zap.Logger
}

func NewResultService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	logger *zap.Logger,
) ResultService {
	return &resultService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

func (s *resultService) RecordPoolResult(ctx context.Context, matchID uuid.UUID, score1, score2 int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if match.Type != models.MatchTypePool {
		return nil, fmt.Errorf("%w: %s is a %s match", ErrMatchTypeMismatch, matchID, match.Type)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !poolResultsOpen(tournament) {
		return nil, fmt.Errorf("%w: tournament is %s", ErrPoolPlayClosed, tournament.Status)
	}
	if !match.TeamsAssigned() {
		return nil, ErrMatchTeamsIncomplete
	}
	if err := validateScores(score1, score2); err != nil {
		return nil, err
	}

	corrected := match.Status == models.MatchCompleted
	applyResult(match, score1, score2)
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("pool result recorded",
		zap.String("match_id", matchID.String()),
		zap.Intp("pool_id", match.PoolID),
		zap.Int("round", match.RoundNumber),
		zap.Bool("corrected", corrected))
	return match, nil
}

func (s *resultService) RecordBracketResult(ctx context.Context, matchID uuid.UUID, score1, score2 int) (*models.Match, error) {
	match, err := s.bracketMatchForUpdate(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.TeamsAssigned() {
		return nil, fmt.Errorf("%w: waiting on an earlier round", ErrMatchTeamsIncomplete)
	}
	if err := validateScores(score1, score2); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	// Latch before touching the match: even a partially applied result
	// must keep the bracket locked against rebuilds.
	if err := s.lockBracket(ctx, tournament); err != nil {
		return nil, err
	}

	applyResult(match, score1, score2)
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := s.advanceWinner(ctx, tournament, match); err != nil {
		return nil, err
	}

	s.logger.Info("bracket result recorded",
		zap.String("match_id", matchID.String()),
		zap.Int("round", match.RoundNumber),
		zap.Int("position", match.BracketIndex),
		zap.Intp("winner_id", match.WinnerID))
	return match, nil
}

func (s *resultService) MarkBracketMatchLive(ctx context.Context, matchID uuid.UUID) (*models.Match, error) {
	match, err := s.bracketMatchForUpdate(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.TeamsAssigned() {
		return nil, fmt.Errorf("%w: waiting on an earlier round", ErrMatchTeamsIncomplete)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.lockBracket(ctx, tournament); err != nil {
		return nil, err
	}

	match.Status = models.MatchLive
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("bracket match live",
		zap.String("match_id", matchID.String()),
		zap.Int("round", match.RoundNumber),
		zap.Int("position", match.BracketIndex))
	return match, nil
}

// bracketMatchForUpdate loads a bracket match that may still accept
// writes.
func (s *resultService) bracketMatchForUpdate(ctx context.Context, matchID uuid.UUID) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if match.Type != models.MatchTypeBracket {
		return nil, fmt.Errorf("%w: %s is a %s match", ErrMatchTypeMismatch, matchID, match.Type)
	}
	if match.IsBye {
		return nil, ErrByeMatchImmutable
	}
	if match.Status == models.MatchCompleted {
		return nil, ErrMatchAlreadyDecided
	}
	return match, nil
}

// lockBracket flips the one-way bracket-started latch.
func (s *resultService) lockBracket(ctx context.Context, tournament *models.Tournament) error {
	if tournament.BracketStarted {
		return nil
	}
	tournament.BracketStarted = true
	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("bracket play started, rebuilds are now blocked",
		zap.Int("tournament_id", tournament.ID))
	return nil
}

// advanceWinner routes the winner into the next round, or closes the
// tournament when the final is decided.
func (s *resultService) advanceWinner(ctx context.Context, tournament *models.Tournament, match *models.Match) error {
	bracketType := models.MatchTypeBracket
	bracket, err := s.matchRepo.ListByTournament(ctx, match.TournamentID, &bracketType)
	if err != nil {
		return mapRepositoryError(err)
	}

	totalRounds := engine.TotalBracketRounds(bracket)
	nextRound, nextIndex, slot, ok := engine.NextBracketSlot(match.RoundNumber, match.BracketIndex, totalRounds)
	if !ok {
		if tournament.CanTransitionTo(models.StatusCompleted) {
			tournament.Status = models.StatusCompleted
			if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
				return mapRepositoryError(err)
			}
		}
		s.logger.Info("champion decided",
			zap.Int("tournament_id", tournament.ID),
			zap.Intp("winner_id", match.WinnerID))
		return nil
	}

	for i := range bracket {
		next := &bracket[i]
		if next.RoundNumber != nextRound || next.BracketIndex != nextIndex {
			continue
		}
		if slot == 1 {
			next.Team1ID = match.WinnerID
		} else {
			next.Team2ID = match.WinnerID
		}
		if err := s.matchRepo.Update(ctx, next); err != nil {
			return mapRepositoryError(err)
		}
		return nil
	}
	return fmt.Errorf("%w: bracket match at round %d position %d", ErrMatchNotFound, nextRound, nextIndex)
}

// poolResultsOpen reports whether pool scores may still be written.
// Corrections stay open after bracket generation, since a rebuild can
// absorb them, but close for good once bracket play starts.
func poolResultsOpen(t *models.Tournament) bool {
	switch t.Status {
	case models.StatusPoolPlay:
		return true
	case models.StatusBracket:
		return !t.BracketStarted
	}
	return false
}

// applyResult writes a final score onto a match.
func applyResult(match *models.Match, score1, score2 int) {
	winner := *match.Team1ID
	if score2 > score1 {
		winner = *match.Team2ID
	}
	match.Score1 = &score1
	match.Score2 = &score2
	match.WinnerID = &winner
	match.Status = models.MatchCompleted
}
