package services

import (
	"context"
	"fmt"

	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"go.uber.org/zap"
)

// ScheduleService turns seeded pools into a playable round schedule.
type ScheduleService interface {
	// CheckPrerequisites reports everything that still blocks schedule
	// generation. An empty report means generation would succeed.
	CheckPrerequisites(ctx context.Context, tournamentID int) (models.PrerequisiteReport, error)

	// GenerateSchedule creates the full pool-play slate. A second call
	// fails unless overwrite is set, in which case the previous pool
	// matches are replaced. Moves a setup tournament into pool play.
	GenerateSchedule(ctx context.Context, tournamentID int, overwrite bool) ([]models.Match, error)
}

type scheduleService struct {
	tournamentRepo repositories.TournamentRepository
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	templates      *engine.TemplateLibrary
	logger         *zap.Logger
}

func NewScheduleService(
	tournamentRepo repositories.TournamentRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	templates *engine.TemplateLibrary,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleService{
		tournamentRepo: tournamentRepo,
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		templates:      templates,
		logger:         logger,
	}
}

func (s *scheduleService) CheckPrerequisites(ctx context.Context, tournamentID int) (models.PrerequisiteReport, error) {
	data, err := loadScheduleData(ctx, tournamentID, s.tournamentRepo, s.poolRepo, s.teamRepo, s.matchRepo)
	if err != nil {
		return models.PrerequisiteReport{}, err
	}
	return engine.CheckPrerequisites(data.engineParams(s.templates)), nil
}

func (s *scheduleService) GenerateSchedule(ctx context.Context, tournamentID int, overwrite bool) ([]models.Match, error) {
	data, err := loadScheduleData(ctx, tournamentID, s.tournamentRepo, s.poolRepo, s.teamRepo, s.matchRepo)
	if err != nil {
		return nil, err
	}

	tournament := data.tournament
	if tournament.Status != models.StatusSetup && tournament.Status != models.StatusPoolPlay {
		return nil, fmt.Errorf("%w: schedule generation requires %s or %s, tournament is %s",
			ErrInvalidStatusTransition, models.StatusSetup, models.StatusPoolPlay, tournament.Status)
	}

	generated, err := engine.BuildPoolSchedule(data.engineParams(s.templates), overwrite)
	if err != nil {
		return nil, err
	}

	// Swap only after generation succeeded, so a failed regenerate
	// leaves the old schedule in place.
	if overwrite {
		deleted, err := s.matchRepo.DeleteByTournamentAndType(ctx, tournamentID, models.MatchTypePool)
		if err != nil {
			return nil, err
		}
		if deleted > 0 {
			s.logger.Info("replaced existing pool schedule",
				zap.Int("tournament_id", tournamentID),
				zap.Int("deleted_matches", deleted))
		}
	}

	stored, err := s.matchRepo.CreateBatch(ctx, generated)
	if err != nil {
		return nil, err
	}

	if tournament.Status == models.StatusSetup {
		tournament.Status = models.StatusPoolPlay
		if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
			return nil, mapRepositoryError(err)
		}
	}

	s.logger.Info("pool schedule generated",
		zap.Int("tournament_id", tournamentID),
		zap.Int("pools", len(data.pools)),
		zap.Int("matches", len(stored)),
		zap.Bool("overwrite", overwrite))
	return stored, nil
}
