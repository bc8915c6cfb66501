package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/rating"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/platform/cache"
)

// View selects which stat block backs the table.
type View string

const (
	ViewAllTime View = "alltime"
	ViewSeason  View = "season"
)

const leaderboardWorkers = 8

// Row is one ranked leaderboard entry.
type Row struct {
	Player roster.Player
	Stats  roster.Stats
	Form   rating.Form
	Rating int
}

// SquadMember is one roster entry on the squad screen, with the player's
// spot in tonight's queue when checked in.
type SquadMember struct {
	Player roster.Player
	Rating int
	Status checkin.Status
}

// LeaderboardService computes the ranked stats tables. Tables are cached;
// any pushed store change drops the cache.
type LeaderboardService struct {
	rosterRepo  roster.Repository
	matchRepo   match.Repository
	checkinRepo checkin.Repository
	cache       *cache.Store
	logger      *slog.Logger
	now         func() time.Time
}

func NewLeaderboardService(
	rosterRepo roster.Repository,
	matchRepo match.Repository,
	checkinRepo checkin.Repository,
	cacheStore *cache.Store,
	logger *slog.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaderboardService{
		rosterRepo:  rosterRepo,
		matchRepo:   matchRepo,
		checkinRepo: checkinRepo,
		cache:       cacheStore,
		logger:      logger,
		now:         time.Now,
	}
}

// Table returns the ranked leaderboard for the view. Players with no games
// in the selected block and no manual attributes are unrated and left out.
func (s *LeaderboardService) Table(ctx context.Context, view View) ([]Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Table")
	defer span.End()

	switch view {
	case ViewAllTime, ViewSeason:
	default:
		return nil, fmt.Errorf("%w: unknown leaderboard view %q", ErrInvalidInput, view)
	}

	key := "leaderboard:" + string(view)
	if s.cache == nil {
		return s.computeTable(ctx, view)
	}

	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeTable(ctx, view)
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]Row)
	if !ok {
		return s.computeTable(ctx, view)
	}

	return rows, nil
}

func (s *LeaderboardService) computeTable(ctx context.Context, view View) ([]Row, error) {
	players, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	rows := s.computeRows(players, matches, view)

	ranked := rows[:0]
	for _, row := range rows {
		if row.Stats.GamesPlayed == 0 && row.Player.Attributes == nil {
			continue
		}
		ranked = append(ranked, row)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return strings.ToLower(ranked[i].Player.Name) < strings.ToLower(ranked[j].Player.Name)
	})

	return ranked, nil
}

// computeRows fans the per-player streak walks out over a bounded pool; the
// match log grows every week and the walk is the expensive part.
func (s *LeaderboardService) computeRows(players []roster.Player, matches []match.Match, view View) []Row {
	rows := make([]Row, len(players))

	workers := leaderboardWorkers
	if len(players) < workers {
		workers = len(players)
	}
	if workers < 1 {
		return rows
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		for i, p := range players {
			rows[i] = s.computeRow(p, matches, view)
		}
		return rows
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range players {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			rows[i] = s.computeRow(players[i], matches, view)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			rows[i] = s.computeRow(players[i], matches, view)
		}
	}
	wg.Wait()

	return rows
}

func (s *LeaderboardService) computeRow(p roster.Player, matches []match.Match, view View) Row {
	form := rating.Streaks(p.ID, matches)
	stats := combinedStats(p, matches, view)

	return Row{
		Player: p,
		Stats:  stats,
		Form:   form,
		Rating: rating.Overall(p, stats, form.Score),
	}
}

// Squad lists the whole roster with current check-in status, unrated players
// included.
func (s *LeaderboardService) Squad(ctx context.Context) ([]SquadMember, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Squad")
	defer span.End()

	players, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	members := make([]SquadMember, 0, len(players))
	for _, p := range players {
		form := rating.Streaks(p.ID, matches)
		stats := combinedStats(p, matches, ViewAllTime)
		status, _ := checkin.StatusOf(queue, p.ID)
		members = append(members, SquadMember{
			Player: p,
			Rating: rating.Overall(p, stats, form.Score),
			Status: status,
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].Player.Name) < strings.ToLower(members[j].Player.Name)
	})

	return members, nil
}

// Invalidate drops the cached tables.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, "leaderboard:")
}

// StartInvalidation subscribes to roster and match changes and drops the
// cached tables whenever either store moves. The returned stop function
// cancels the subscriptions and waits for the consumers to exit.
func (s *LeaderboardService) StartInvalidation(ctx context.Context) (func(), error) {
	playerUpdates, cancelPlayers, err := s.rosterRepo.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe players: %w", err)
	}
	matchUpdates, cancelMatches, err := s.matchRepo.Subscribe(ctx)
	if err != nil {
		cancelPlayers()
		return nil, fmt.Errorf("subscribe matches: %w", err)
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		for range playerUpdates {
			s.Invalidate(ctx)
		}
	})
	wg.Go(func() {
		for range matchUpdates {
			s.Invalidate(ctx)
		}
	})

	return func() {
		cancelPlayers()
		cancelMatches()
		wg.Wait()
	}, nil
}

func combinedStats(p roster.Player, matches []match.Match, view View) roster.Stats {
	derived := rating.Aggregate(p.ID, matches)
	if view == ViewSeason {
		return p.SeasonStats().Add(derived)
	}
	return p.Stats.Add(derived)
}
