package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// ImportService merges legacy spreadsheet stats into the roster. Each import
// is applied as one batch: either every row lands or none do.
type ImportService struct {
	rosterRepo roster.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewImportService(rosterRepo roster.Repository, idGen idgen.Generator, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ImportService{
		rosterRepo: rosterRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type ImportSummary struct {
	Created int
	Updated int
}

type importedRow struct {
	name  string
	stats roster.Stats
}

// ImportAllTime ingests the historic `Name,GamesPlayed,Goals,Wins` sheet.
// Duplicate names within the file are summed before merging; known players
// have the totals added onto their all-time block.
func (s *ImportService) ImportAllTime(ctx context.Context, csvText string) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportAllTime")
	defer span.End()

	rows, err := parseAllTimeCSV(csvText)
	if err != nil {
		return ImportSummary{}, err
	}

	return s.merge(ctx, rows, func(p *roster.Player, stats roster.Stats) {
		p.Stats = p.Stats.Add(stats)
	})
}

// ImportSeason ingests the aggregated per-season sheet
// `Name,Games,Wins,Goals,Assists,GoalsFor,GoalsAgainst,MOTM` into the stored
// season block.
func (s *ImportService) ImportSeason(ctx context.Context, csvText string) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeason")
	defer span.End()

	rows, err := parseSeasonCSV(csvText)
	if err != nil {
		return ImportSummary{}, err
	}

	return s.merge(ctx, rows, func(p *roster.Player, stats roster.Stats) {
		season := p.SeasonStats().Add(stats)
		p.Season = &season
	})
}

func (s *ImportService) merge(ctx context.Context, rows []importedRow, apply func(*roster.Player, roster.Stats)) (ImportSummary, error) {
	existing, err := s.rosterRepo.List(ctx)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("list players: %w", err)
	}

	var summary ImportSummary
	batch := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		var matched *roster.Player
		for i := range existing {
			if roster.SameName(existing[i].Name, row.name) {
				matched = &existing[i]
				break
			}
		}

		if matched != nil {
			p := *matched
			apply(&p, row.stats)
			batch = append(batch, p)
			summary.Updated++
			continue
		}

		id, err := s.idGen.NewID()
		if err != nil {
			return ImportSummary{}, fmt.Errorf("generate player id: %w", err)
		}
		p := roster.Player{ID: id, Name: row.name, CreatedAt: s.now()}
		apply(&p, row.stats)
		batch = append(batch, p)
		summary.Created++
	}

	if err := s.rosterRepo.UpsertBatch(ctx, batch); err != nil {
		return ImportSummary{}, fmt.Errorf("upsert import batch: %w", err)
	}

	s.logger.InfoContext(ctx, "legacy stats imported", "created", summary.Created, "updated", summary.Updated)

	return summary, nil
}

// TemplateAllTime renders the downloadable all-time CSV template.
func (s *ImportService) TemplateAllTime() string {
	return renderTemplate(
		"Name,GamesPlayed,Goals,Wins",
		"Amar,102,53,57",
		"JT,68,46,32",
		"Johann,67,43,30.5",
	)
}

// TemplateSeason renders the downloadable season CSV template.
func (s *ImportService) TemplateSeason() string {
	return renderTemplate(
		"Name,Games,Wins,Goals,Assists,GoalsFor,GoalsAgainst,MOTM",
		"Amar,10,6,12,4,30,18,2",
		"JT,10,4.5,8,6,26,22,1",
	)
}

func renderTemplate(lines ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, line := range lines {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	return buf.String()
}

func parseAllTimeCSV(csvText string) ([]importedRow, error) {
	lines, header, err := splitCSVLines(csvText)
	if err != nil {
		return nil, err
	}
	if err := requireHeaderTokens(header, "name", "games", "goals", "wins"); err != nil {
		return nil, fmt.Errorf("%w: expected columns Name, GamesPlayed, Goals, Wins", err)
	}

	byName := make(map[string]*importedRow)
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		games, gamesErr := strconv.Atoi(strings.TrimSpace(parts[1]))
		goals, goalsErr := strconv.Atoi(strings.TrimSpace(parts[2]))
		wins, winsErr := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if name == "" || gamesErr != nil || goalsErr != nil || winsErr != nil {
			continue
		}

		appendRow(byName, &order, name, roster.Stats{GamesPlayed: games, Goals: goals, Wins: wins})
	}

	return collectRows(byName, order)
}

func parseSeasonCSV(csvText string) ([]importedRow, error) {
	lines, header, err := splitCSVLines(csvText)
	if err != nil {
		return nil, err
	}
	if err := requireHeaderTokens(header, "name", "games", "wins"); err != nil {
		return nil, fmt.Errorf("%w: expected columns Name, Games, Wins, Goals, Assists, GoalsFor, GoalsAgainst, MOTM", err)
	}

	byName := make(map[string]*importedRow)
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) < 8 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		games, gamesErr := strconv.Atoi(strings.TrimSpace(parts[1]))
		wins, winsErr := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if name == "" || gamesErr != nil || winsErr != nil {
			continue
		}

		appendRow(byName, &order, name, roster.Stats{
			GamesPlayed:  games,
			Wins:         wins,
			Goals:        intField(parts[3]),
			Assists:      intField(parts[4]),
			GoalsFor:     intField(parts[5]),
			GoalsAgainst: intField(parts[6]),
			MOTMs:        intField(parts[7]),
		})
	}

	return collectRows(byName, order)
}

func splitCSVLines(csvText string) (rows []string, header string, err error) {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(strings.TrimSuffix(lines[i], "\r"))
	}
	if len(lines) < 2 {
		return nil, "", fmt.Errorf("%w: file is too short, need a header row and at least one data row", ErrInvalidInput)
	}

	return lines[1:], strings.ToLower(lines[0]), nil
}

func requireHeaderTokens(header string, tokens ...string) error {
	for _, token := range tokens {
		if !strings.Contains(header, token) {
			return ErrInvalidInput
		}
	}
	return nil
}

func appendRow(byName map[string]*importedRow, order *[]string, name string, stats roster.Stats) {
	key := strings.ToLower(name)
	if row, ok := byName[key]; ok {
		row.stats = row.stats.Add(stats)
		return
	}
	byName[key] = &importedRow{name: name, stats: stats}
	*order = append(*order, key)
}

func collectRows(byName map[string]*importedRow, order []string) ([]importedRow, error) {
	if len(byName) == 0 {
		return nil, fmt.Errorf("%w: no valid data rows found in file", ErrInvalidInput)
	}

	out := make([]importedRow, 0, len(order))
	for _, key := range order {
		out = append(out, *byName[key])
	}

	return out, nil
}

func intField(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
