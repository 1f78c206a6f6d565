package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/LukasKanopka/GBVGrabBag-sub001/export"
	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/repositories"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders a tournament into an Excel workbook with the
// schedule, pool standings and bracket on separate sheets.
type ExportService interface {
	// ExportTournament builds the workbook in memory and suggests a
	// file name for it.
	ExportTournament(ctx context.Context, tournamentID int) (*bytes.Buffer, string, error)

	// SaveTournamentReport exports the workbook and persists it through
	// the configured writer, returning the stored location.
	SaveTournamentReport(ctx context.Context, tournamentID int) (string, error)
}

type exportService struct {
	tournamentRepo repositories.TournamentRepository
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standings      StandingsService
	writer         export.Writer
	logger         *zap.Logger
}

func NewExportService(
	tournamentRepo repositories.TournamentRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	writer export.Writer,
	logger *zap.Logger,
) ExportService {
	return &exportService{
		tournamentRepo: tournamentRepo,
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		writer:         writer,
		logger:         logger,
	}
}

func (s *exportService) ExportTournament(ctx context.Context, tournamentID int) (*bytes.Buffer, string, error) {
	data, err := loadScheduleData(ctx, tournamentID, s.tournamentRepo, s.poolRepo, s.teamRepo, s.matchRepo)
	if err != nil {
		return nil, "", err
	}
	if len(data.matches) == 0 {
		return nil, "", ErrExportNoMatches
	}
	standings, err := s.standings.TournamentStandings(ctx, tournamentID)
	if err != nil {
		return nil, "", err
	}

	names := make(map[int]string, len(data.teams))
	for _, team := range data.teams {
		names[team.ID] = team.DisplayName()
	}
	poolNames := make(map[int]string, len(data.pools))
	for _, pool := range data.pools {
		poolNames[pool.ID] = pool.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		s.logger.Error("failed to prepare workbook style", zap.Error(err))
		return nil, "", ErrExportFailed
	}

	scheduleIdx, err := writeScheduleSheet(f, headerStyle, data, names, poolNames)
	if err != nil {
		return nil, "", ErrExportFailed
	}
	if err := writeStandingsSheet(f, headerStyle, data.pools, standings, names); err != nil {
		return nil, "", ErrExportFailed
	}
	if err := writeBracketSheet(f, headerStyle, data.matches, names); err != nil {
		return nil, "", ErrExportFailed
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(scheduleIdx)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportFailed
	}
	return buf, reportFilename(data.tournament), nil
}

func (s *exportService) SaveTournamentReport(ctx context.Context, tournamentID int) (string, error) {
	buf, filename, err := s.ExportTournament(ctx, tournamentID)
	if err != nil {
		return "", err
	}
	result, err := s.writer.Write(ctx, filename, xlsxContentType, buf)
	if err != nil {
		return "", err
	}

	s.logger.Info("tournament report saved",
		zap.Int("tournament_id", tournamentID),
		zap.String("key", result.Key),
		zap.String("location", result.Location))
	return result.Location, nil
}

func writeScheduleSheet(f *excelize.File, style int, data *scheduleData, names, poolNames map[int]string) (int, error) {
	const sheet = "Schedule"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return 0, err
	}
	f.SetColWidth(sheet, "A", "G", 16)

	title := strings.TrimSpace(fmt.Sprintf("%s Results", data.tournament.Name))
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "G1")
	f.SetCellStyle(sheet, "A1", "A1", style)

	headers := []string{"Stage", "Round", "Team 1", "Team 2", "Referee", "Score", "Status"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 2), h)
	}
	f.SetCellStyle(sheet, "A2", "G2", style)

	row := 3
	for _, m := range data.matches {
		f.SetCellValue(sheet, cellRef(1, row), stageLabel(m, poolNames))
		f.SetCellValue(sheet, cellRef(2, row), m.RoundNumber)
		f.SetCellValue(sheet, cellRef(3, row), teamLabel(m.Team1ID, names))
		f.SetCellValue(sheet, cellRef(4, row), opponentLabel(m, names))
		f.SetCellValue(sheet, cellRef(5, row), optionalTeamLabel(m.RefereeID, names))
		f.SetCellValue(sheet, cellRef(6, row), scoreLabel(m))
		f.SetCellValue(sheet, cellRef(7, row), string(m.Status))
		row++
	}
	return idx, nil
}

func writeStandingsSheet(f *excelize.File, style int, pools []models.Pool, standings map[int][]models.PoolStandingEntry, names map[int]string) error {
	const sheet = "Standings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "J", 14)

	headers := []string{"Pool", "Rank", "Team", "Wins", "Losses", "Sets Won", "Sets Lost", "Points For", "Points Against", "Point Diff"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	f.SetCellStyle(sheet, "A1", "J1", style)

	row := 2
	for _, pool := range pools {
		for _, e := range standings[pool.ID] {
			f.SetCellValue(sheet, cellRef(1, row), pool.Name)
			f.SetCellValue(sheet, cellRef(2, row), e.Rank)
			f.SetCellValue(sheet, cellRef(3, row), teamLabel(&e.TeamID, names))
			f.SetCellValue(sheet, cellRef(4, row), e.Wins)
			f.SetCellValue(sheet, cellRef(5, row), e.Losses)
			f.SetCellValue(sheet, cellRef(6, row), e.SetsWon)
			f.SetCellValue(sheet, cellRef(7, row), e.SetsLost)
			f.SetCellValue(sheet, cellRef(8, row), e.PointsFor)
			f.SetCellValue(sheet, cellRef(9, row), e.PointsAgainst)
			f.SetCellValue(sheet, cellRef(10, row), e.PointDiff())
			row++
		}
	}
	return nil
}

func writeBracketSheet(f *excelize.File, style int, matches []models.Match, names map[int]string) error {
	const sheet = "Bracket"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "F", 16)

	headers := []string{"Round", "Match", "Team 1", "Team 2", "Winner", "Status"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	f.SetCellStyle(sheet, "A1", "F1", style)

	row := 2
	for _, m := range matches {
		if m.Type != models.MatchTypeBracket {
			continue
		}
		f.SetCellValue(sheet, cellRef(1, row), m.RoundNumber)
		f.SetCellValue(sheet, cellRef(2, row), m.BracketIndex+1)
		f.SetCellValue(sheet, cellRef(3, row), teamLabel(m.Team1ID, names))
		f.SetCellValue(sheet, cellRef(4, row), opponentLabel(m, names))
		f.SetCellValue(sheet, cellRef(5, row), optionalTeamLabel(m.WinnerID, names))
		f.SetCellValue(sheet, cellRef(6, row), string(m.Status))
		row++
	}
	return nil
}

func cellRef(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s%d", name, row)
}

func stageLabel(m models.Match, poolNames map[int]string) string {
	if m.Type == models.MatchTypePool {
		if m.PoolID != nil {
			if name := poolNames[*m.PoolID]; name != "" {
				return name
			}
			return fmt.Sprintf("Pool %d", *m.PoolID)
		}
		return "Pool"
	}
	return fmt.Sprintf("Bracket R%d", m.RoundNumber)
}

func teamLabel(id *int, names map[int]string) string {
	if id == nil {
		return "TBD"
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return fmt.Sprintf("Team %d", *id)
}

// opponentLabel renders the team2 side, marking byes explicitly.
func opponentLabel(m models.Match, names map[int]string) string {
	if m.IsBye {
		return "BYE"
	}
	return teamLabel(m.Team2ID, names)
}

// optionalTeamLabel is blank when no team is set, for referee and
// winner columns.
func optionalTeamLabel(id *int, names map[int]string) string {
	if id == nil {
		return ""
	}
	return teamLabel(id, names)
}

func scoreLabel(m models.Match) string {
	if m.Score1 == nil || m.Score2 == nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", *m.Score1, *m.Score2)
}

func reportFilename(t *models.Tournament) string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		name = fmt.Sprintf("tournament_%d", t.ID)
	}
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return fmt.Sprintf("%s_results.xlsx", slug)
}
