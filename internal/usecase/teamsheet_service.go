package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/rating"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
	"github.com/fridayfut/fridayfut/internal/domain/teamsheet"
)

// TeamsheetService deals the starting roster into two balanced sides and
// manages the published sheet.
type TeamsheetService struct {
	rosterRepo   roster.Repository
	matchRepo    match.Repository
	checkinRepo  checkin.Repository
	settingsRepo settings.Repository
	logger       *slog.Logger
	now          func() time.Time
}

func NewTeamsheetService(
	rosterRepo roster.Repository,
	matchRepo match.Repository,
	checkinRepo checkin.Repository,
	settingsRepo settings.Repository,
	logger *slog.Logger,
) *TeamsheetService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamsheetService{
		rosterRepo:   rosterRepo,
		matchRepo:    matchRepo,
		checkinRepo:  checkinRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// TeamPlayer is one slot on a generated sheet.
type TeamPlayer struct {
	Player roster.Player
	Rating int
}

type GeneratedTeams struct {
	Blue         []TeamPlayer
	White        []TeamPlayer
	BlueAverage  int
	WhiteAverage int
}

// Generate deals the current starting roster into two sides. The draft is a
// proposal only; nothing is stored until Publish.
func (s *TeamsheetService) Generate(ctx context.Context) (GeneratedTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsheetService.Generate")
	defer span.End()

	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return GeneratedTeams{}, fmt.Errorf("list check-ins: %w", err)
	}
	starting, _ := checkin.Split(queue)

	pool := make([]roster.Player, 0, len(starting))
	for _, c := range starting {
		p, found, err := s.rosterRepo.GetByID(ctx, c.PlayerID)
		if err != nil {
			return GeneratedTeams{}, fmt.Errorf("get player: %w", err)
		}
		if !found {
			continue
		}
		pool = append(pool, p)
	}

	ratings, err := s.ratingsFor(ctx, pool)
	if err != nil {
		return GeneratedTeams{}, err
	}

	squads, err := teamsheet.Balance(pool, ratings)
	if err != nil {
		if errors.Is(err, teamsheet.ErrNotEnoughPlayers) {
			return GeneratedTeams{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return GeneratedTeams{}, fmt.Errorf("balance teams: %w", err)
	}

	return s.toGenerated(squads, ratings), nil
}

type MoveInput struct {
	BlueIDs  []string
	WhiteIDs []string
	PlayerID string
}

// Move flips one player to the other side of a draft sheet and returns the
// updated sheet with recomputed averages.
func (s *TeamsheetService) Move(ctx context.Context, input MoveInput) (GeneratedTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsheetService.Move")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return GeneratedTeams{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	blue, err := s.resolvePlayers(ctx, input.BlueIDs)
	if err != nil {
		return GeneratedTeams{}, err
	}
	white, err := s.resolvePlayers(ctx, input.WhiteIDs)
	if err != nil {
		return GeneratedTeams{}, err
	}

	squads := teamsheet.Squads{Blue: blue, White: white}
	if !squads.Move(playerID) {
		return GeneratedTeams{}, fmt.Errorf("%w: player %s is not on either side", ErrInvalidInput, playerID)
	}

	ratings, err := s.ratingsFor(ctx, append(append([]roster.Player{}, squads.Blue...), squads.White...))
	if err != nil {
		return GeneratedTeams{}, err
	}

	return s.toGenerated(squads, ratings), nil
}

// Publish shares the sheet with the group as player ID lists plus a
// publication timestamp.
func (s *TeamsheetService) Publish(ctx context.Context, blueIDs, whiteIDs []string) (settings.PublishedTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsheetService.Publish")
	defer span.End()

	if _, err := s.resolvePlayers(ctx, blueIDs); err != nil {
		return settings.PublishedTeams{}, err
	}
	if _, err := s.resolvePlayers(ctx, whiteIDs); err != nil {
		return settings.PublishedTeams{}, err
	}

	published := settings.PublishedTeams{
		Blue:        append([]string{}, blueIDs...),
		White:       append([]string{}, whiteIDs...),
		PublishedAt: s.now(),
	}
	if err := published.Validate(); err != nil {
		return settings.PublishedTeams{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.settingsRepo.SetCurrentTeams(ctx, published); err != nil {
		return settings.PublishedTeams{}, fmt.Errorf("set current teams: %w", err)
	}

	s.logger.InfoContext(ctx, "team sheet published", "blue", len(blueIDs), "white", len(whiteIDs))

	return published, nil
}

// Current returns the published sheet, if any.
func (s *TeamsheetService) Current(ctx context.Context) (settings.PublishedTeams, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsheetService.Current")
	defer span.End()

	published, found, err := s.settingsRepo.GetCurrentTeams(ctx)
	if err != nil {
		return settings.PublishedTeams{}, false, fmt.Errorf("get current teams: %w", err)
	}

	return published, found, nil
}

// Clear withdraws the published sheet.
func (s *TeamsheetService) Clear(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamsheetService.Clear")
	defer span.End()

	if err := s.settingsRepo.ClearCurrentTeams(ctx); err != nil {
		return fmt.Errorf("clear current teams: %w", err)
	}

	return nil
}

func (s *TeamsheetService) ratingsFor(ctx context.Context, players []roster.Player) (map[string]int, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	ratings := make(map[string]int, len(players))
	for _, p := range players {
		form := rating.Streaks(p.ID, matches)
		stats := combinedStats(p, matches, ViewAllTime)
		ratings[p.ID] = rating.Overall(p, stats, form.Score)
	}

	return ratings, nil
}

func (s *TeamsheetService) resolvePlayers(ctx context.Context, playerIDs []string) ([]roster.Player, error) {
	out := make([]roster.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: empty player id in team list", ErrInvalidInput)
		}
		p, found, err := s.rosterRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get player: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, id)
		}
		out = append(out, p)
	}

	return out, nil
}

func (s *TeamsheetService) toGenerated(squads teamsheet.Squads, ratings map[string]int) GeneratedTeams {
	toTeam := func(side []roster.Player) []TeamPlayer {
		out := make([]TeamPlayer, 0, len(side))
		for _, p := range side {
			out = append(out, TeamPlayer{Player: p, Rating: ratings[p.ID]})
		}
		return out
	}

	return GeneratedTeams{
		Blue:         toTeam(squads.Blue),
		White:        toTeam(squads.White),
		BlueAverage:  teamsheet.Average(squads.Blue, ratings),
		WhiteAverage: teamsheet.Average(squads.White, ratings),
	}
}
