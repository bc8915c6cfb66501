package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

// LiveService streams dashboard snapshots to connected clients. Every pushed
// store change yields one fresh snapshot; slow consumers only ever miss
// intermediate states, never the latest one.
type LiveService struct {
	rosterRepo   roster.Repository
	matchRepo    match.Repository
	checkinRepo  checkin.Repository
	settingsRepo settings.Repository
	logger       *slog.Logger
}

func NewLiveService(
	rosterRepo roster.Repository,
	matchRepo match.Repository,
	checkinRepo checkin.Repository,
	settingsRepo settings.Repository,
	logger *slog.Logger,
) *LiveService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveService{
		rosterRepo:   rosterRepo,
		matchRepo:    matchRepo,
		checkinRepo:  checkinRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// DashboardSnapshot is the full client-visible state at one point in time.
type DashboardSnapshot struct {
	Players []roster.Player
	Matches []match.Match
	Queue   []checkin.Checkin
	Teams   *settings.PublishedTeams
}

// Snapshot loads the current dashboard state.
func (s *LiveService) Snapshot(ctx context.Context) (DashboardSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveService.Snapshot")
	defer span.End()

	players, err := s.rosterRepo.List(ctx)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("list matches: %w", err)
	}
	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("list check-ins: %w", err)
	}

	snapshot := DashboardSnapshot{Players: players, Matches: matches, Queue: queue}

	teams, found, err := s.settingsRepo.GetCurrentTeams(ctx)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("get current teams: %w", err)
	}
	if found {
		snapshot.Teams = &teams
	}

	return snapshot, nil
}

// Watch emits an initial snapshot and then one per pushed store change until
// the context is cancelled. The returned stop function tears the
// subscriptions down and closes the channel.
func (s *LiveService) Watch(ctx context.Context) (<-chan DashboardSnapshot, func(), error) {
	playerUpdates, cancelPlayers, err := s.rosterRepo.Subscribe(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe players: %w", err)
	}
	matchUpdates, cancelMatches, err := s.matchRepo.Subscribe(ctx)
	if err != nil {
		cancelPlayers()
		return nil, nil, fmt.Errorf("subscribe matches: %w", err)
	}
	queueUpdates, cancelQueue, err := s.checkinRepo.Subscribe(ctx)
	if err != nil {
		cancelPlayers()
		cancelMatches()
		return nil, nil, fmt.Errorf("subscribe check-ins: %w", err)
	}
	teamUpdates, cancelTeams, err := s.settingsRepo.Subscribe(ctx)
	if err != nil {
		cancelPlayers()
		cancelMatches()
		cancelQueue()
		return nil, nil, fmt.Errorf("subscribe settings: %w", err)
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	var consumers conc.WaitGroup
	consumers.Go(func() {
		for range playerUpdates {
			notify()
		}
	})
	consumers.Go(func() {
		for range matchUpdates {
			notify()
		}
	})
	consumers.Go(func() {
		for range queueUpdates {
			notify()
		}
	})
	consumers.Go(func() {
		for range teamUpdates {
			notify()
		}
	})

	out := make(chan DashboardSnapshot, 1)
	var emitter conc.WaitGroup
	emitter.Go(func() {
		defer close(out)

		s.emit(watchCtx, out)
		for {
			select {
			case <-watchCtx.Done():
				return
			case <-changes:
				s.emit(watchCtx, out)
			}
		}
	})

	stop := func() {
		cancelPlayers()
		cancelMatches()
		cancelQueue()
		cancelTeams()
		consumers.Wait()
		cancelWatch()
		emitter.Wait()
	}

	return out, stop, nil
}

func (s *LiveService) emit(ctx context.Context, out chan DashboardSnapshot) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WarnContext(ctx, "live snapshot failed", "error", err)
		}
		return
	}

	// Replace a pending snapshot instead of blocking on a slow consumer.
	for {
		select {
		case out <- snapshot:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
