package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/LukasKanopka/GBVGrabBag-sub001/config"
	"github.com/LukasKanopka/GBVGrabBag-sub001/engine"
	"github.com/LukasKanopka/GBVGrabBag-sub001/export"
	"github.com/LukasKanopka/GBVGrabBag-sub001/logging"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"github.com/LukasKanopka/GBVGrabBag-sub001/services"
	"github.com/LukasKanopka/GBVGrabBag-sub001/utils"
	"go.uber.org/zap"
)

// drawPool is the default name pool for the partner draw. Events larger
// than the list fall back to numbered players.
var drawPool = []string{
	"Ana", "Ben", "Cara", "Dario", "Elena", "Finn", "Gia", "Hugo",
	"Ines", "Jonas", "Kim", "Luca", "Mara", "Nico", "Olga", "Pavel",
	"Rita", "Sam", "Tessa", "Umar", "Vera", "Wes", "Yara", "Zane",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("event run failed", zap.Error(err))
		os.Exit(1)
	}
}

// run drives one grab-bag event end to end: partner draw, pool
// schedule, pool play, bracket, champion, workbook export.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	tournamentRepo := repositories.NewTournamentRepository()
	poolRepo := repositories.NewPoolRepository()
	teamRepo := repositories.NewTeamRepository()
	matchRepo := repositories.NewMatchRepository()

	writer, err := export.NewLocalWriter(export.LocalWriterConfig{Dir: cfg.ExportDir})
	if err != nil {
		return fmt.Errorf("export writer: %w", err)
	}

	rules := models.AdvancementRules{
		Tiebreakers:      models.DefaultTiebreakOrder(),
		AdvancersPerPool: cfg.AdvancersPerPool,
	}
	standingsService := services.NewStandingsService(poolRepo, teamRepo, matchRepo, rules, cfg.TiebreakSeed, logger)
	scheduleService := services.NewScheduleService(tournamentRepo, poolRepo, teamRepo, matchRepo, engine.DefaultTemplateLibrary(), logger)
	bracketService := services.NewBracketService(tournamentRepo, matchRepo, standingsService, logger)
	resultService := services.NewResultService(tournamentRepo, matchRepo, logger)
	exportService := services.NewExportService(tournamentRepo, poolRepo, teamRepo, matchRepo, standingsService, writer, logger)
	logger.Info("services wired",
		zap.Int("pool_count", cfg.PoolCount),
		zap.Int("pool_size", cfg.PoolSize),
		zap.Int("advancers_per_pool", cfg.AdvancersPerPool))

	tournament, err := seedEvent(ctx, cfg, tournamentRepo, poolRepo, teamRepo, logger)
	if err != nil {
		return err
	}

	report, err := scheduleService.CheckPrerequisites(ctx, tournament.ID)
	if err != nil {
		return fmt.Errorf("prerequisite check: %w", err)
	}
	if !report.OK() {
		for _, item := range report.Items {
			logger.Warn("schedule blocked",
				zap.Int("pool_id", item.PoolID),
				zap.Intp("team_id", item.TeamID),
				zap.String("reason", item.Reason))
		}
		return errors.New("schedule prerequisites not met")
	}

	if _, err := scheduleService.GenerateSchedule(ctx, tournament.ID, false); err != nil {
		return fmt.Errorf("generate schedule: %w", err)
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.DrawSeed), 1))
	if err := simulatePoolPlay(ctx, rng, tournament.ID, matchRepo, resultService); err != nil {
		return err
	}

	names, err := teamNames(ctx, tournament.ID, teamRepo)
	if err != nil {
		return err
	}
	if err := logStandings(ctx, tournament.ID, standingsService, names, logger); err != nil {
		return err
	}

	if _, err := bracketService.GenerateBracket(ctx, tournament.ID); err != nil {
		return fmt.Errorf("generate bracket: %w", err)
	}

	// A rebuild is still legal here: no bracket ball has been served,
	// so late pool corrections could be absorbed.
	if _, err := bracketService.RebuildBracket(ctx, tournament.ID); err != nil {
		return fmt.Errorf("rebuild before start: %w", err)
	}

	champion, err := playBracket(ctx, rng, tournament.ID, matchRepo, resultService, bracketService, logger)
	if err != nil {
		return err
	}
	logger.Info("champion crowned",
		zap.String("tournament", tournament.Name),
		zap.String("team", names[champion]))

	location, err := exportService.SaveTournamentReport(ctx, tournament.ID)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	logger.Info("results workbook written", zap.String("location", location))
	return nil
}

// seedEvent creates the tournament, runs the partner draw and fills the
// pools with snake seeding, leaving the event ready for scheduling.
func seedEvent(
	ctx context.Context,
	cfg *config.Config,
	tournamentRepo repositories.TournamentRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	logger *zap.Logger,
) (*models.Tournament, error) {
	tournament := &models.Tournament{Name: "Grab Bag Open", Status: models.StatusDraft}
	if err := tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}

	pools := make([]models.Pool, cfg.PoolCount)
	for p := range pools {
		pool := &models.Pool{
			TournamentID: tournament.ID,
			Name:         fmt.Sprintf("Pool %c", 'A'+p),
			TargetSize:   cfg.PoolSize,
		}
		if err := poolRepo.Create(ctx, pool); err != nil {
			return nil, fmt.Errorf("create pool: %w", err)
		}
		pools[p] = *pool
	}

	teamCount := cfg.PoolCount * cfg.PoolSize
	players := drawPlayers(2*teamCount, cfg.DrawSeed)
	for i := 0; i < teamCount; i++ {
		// Snake across pools so the draw order spreads evenly.
		row, col := i/cfg.PoolCount, i%cfg.PoolCount
		if row%2 == 1 {
			col = cfg.PoolCount - 1 - col
		}
		team := &models.Team{
			TournamentID: tournament.ID,
			Player1:      players[2*i],
			Player2:      players[2*i+1],
			PoolID:       utils.Ptr(pools[col].ID),
			SeedInPool:   utils.Ptr(row + 1),
			SeedGlobal:   utils.Ptr(i + 1),
		}
		if err := teamRepo.Create(ctx, team); err != nil {
			return nil, fmt.Errorf("create team: %w", err)
		}
		logger.Info("partners drawn",
			zap.String("team", team.DisplayName()),
			zap.String("pool", pools[col].Name),
			zap.Int("seed", i+1))
	}

	tournament.Status = models.StatusSetup
	if err := tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("update tournament: %w", err)
	}
	return tournament, nil
}

// drawPlayers shuffles the player list with the configured draw seed.
// Consecutive entries become partners.
func drawPlayers(count int, seed int64) []string {
	players := make([]string, count)
	for i := range players {
		if i < len(drawPool) {
			players[i] = drawPool[i]
		} else {
			players[i] = fmt.Sprintf("Player %d", i+1)
		}
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
	return players
}

func simulatePoolPlay(
	ctx context.Context,
	rng *rand.Rand,
	tournamentID int,
	matchRepo repositories.MatchRepository,
	resultService services.ResultService,
) error {
	poolType := models.MatchTypePool
	matches, err := matchRepo.ListByTournament(ctx, tournamentID, &poolType)
	if err != nil {
		return fmt.Errorf("list pool matches: %w", err)
	}
	for _, m := range matches {
		score1, score2 := randomScore(rng)
		if _, err := resultService.RecordPoolResult(ctx, m.ID, score1, score2); err != nil {
			return fmt.Errorf("record pool result: %w", err)
		}
	}
	return nil
}

// playBracket records bracket results round by round until the final is
// decided, and returns the champion's team ID. The first recorded
// result locks the bracket; the rebuild attempt right after it is
// expected to bounce.
func playBracket(
	ctx context.Context,
	rng *rand.Rand,
	tournamentID int,
	matchRepo repositories.MatchRepository,
	resultService services.ResultService,
	bracketService services.BracketService,
	logger *zap.Logger,
) (int, error) {
	bracketType := models.MatchTypeBracket
	matches, err := matchRepo.ListByTournament(ctx, tournamentID, &bracketType)
	if err != nil {
		return 0, fmt.Errorf("list bracket matches: %w", err)
	}
	totalRounds := engine.TotalBracketRounds(matches)

	recorded := 0
	for round := 1; round <= totalRounds; round++ {
		matches, err = matchRepo.ListByTournament(ctx, tournamentID, &bracketType)
		if err != nil {
			return 0, fmt.Errorf("list bracket matches: %w", err)
		}
		for _, m := range matches {
			if m.RoundNumber != round || m.Status == models.MatchCompleted {
				continue
			}
			score1, score2 := randomScore(rng)
			if _, err := resultService.RecordBracketResult(ctx, m.ID, score1, score2); err != nil {
				return 0, fmt.Errorf("record bracket result: %w", err)
			}
			recorded++

			if recorded == 1 {
				_, err := bracketService.RebuildBracket(ctx, tournamentID)
				if !errors.Is(err, engine.ErrRebuildBlocked) {
					return 0, fmt.Errorf("rebuild after first result should be blocked, got: %v", err)
				}
				logger.Info("rebuild refused as expected", zap.Error(err))
			}
		}
	}

	matches, err = matchRepo.ListByTournament(ctx, tournamentID, &bracketType)
	if err != nil {
		return 0, fmt.Errorf("list bracket matches: %w", err)
	}
	for _, m := range matches {
		if m.RoundNumber == totalRounds && m.WinnerID != nil {
			return *m.WinnerID, nil
		}
	}
	return 0, errors.New("final has no winner on record")
}

// randomScore returns a rally-point result to 21 with a random winner.
func randomScore(rng *rand.Rand) (int, int) {
	loser := 10 + rng.IntN(10)
	if rng.IntN(2) == 0 {
		return 21, loser
	}
	return loser, 21
}

func logStandings(
	ctx context.Context,
	tournamentID int,
	standingsService services.StandingsService,
	names map[int]string,
	logger *zap.Logger,
) error {
	byPool, err := standingsService.TournamentStandings(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("tournament standings: %w", err)
	}
	for poolID, entries := range byPool {
		for _, entry := range entries {
			logger.Info("pool standing",
				zap.Int("pool_id", poolID),
				zap.Int("rank", entry.Rank),
				zap.String("team", names[entry.TeamID]),
				zap.Int("wins", entry.Wins),
				zap.Int("losses", entry.Losses),
				zap.Int("point_diff", entry.PointDiff()))
		}
	}

	advancers, err := standingsService.Advancers(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("advancers: %w", err)
	}
	for _, a := range advancers {
		logger.Info("advancing to bracket",
			zap.Int("seed", a.Seed),
			zap.String("team", names[a.TeamID]),
			zap.Int("pool_id", a.PoolID),
			zap.Int("pool_rank", a.PoolRank))
	}
	return nil
}

func teamNames(ctx context.Context, tournamentID int, teamRepo repositories.TeamRepository) (map[int]string, error) {
	teams, err := teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[int]string, len(teams))
	for i := range teams {
		names[teams[i].ID] = teams[i].DisplayName()
	}
	return names, nil
}
