package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// CheckinService runs the first-come-first-served queue for the upcoming
// session.
type CheckinService struct {
	checkinRepo  checkin.Repository
	settingsRepo settings.Repository
	rosterRepo   roster.Repository
	idGen        idgen.Generator
	logger       *slog.Logger
	now          func() time.Time
}

func NewCheckinService(
	checkinRepo checkin.Repository,
	settingsRepo settings.Repository,
	rosterRepo roster.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *CheckinService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckinService{
		checkinRepo:  checkinRepo,
		settingsRepo: settingsRepo,
		rosterRepo:   rosterRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

type QueueView struct {
	Starting   []checkin.Checkin
	Waitlist   []checkin.Checkin
	UnlockTime *time.Time
	Unlocked   bool
}

func (s *CheckinService) Queue(ctx context.Context) (QueueView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheckinService.Queue")
	defer span.End()

	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return QueueView{}, fmt.Errorf("list check-ins: %w", err)
	}

	cfg, _, err := s.settingsRepo.GetConfig(ctx)
	if err != nil {
		return QueueView{}, fmt.Errorf("get settings: %w", err)
	}

	starting, waitlist := checkin.Split(queue)

	return QueueView{
		Starting:   starting,
		Waitlist:   waitlist,
		UnlockTime: cfg.UnlockTime,
		Unlocked:   cfg.Unlocked(s.now()),
	}, nil
}

type CheckInInput struct {
	PlayerID string
	// AsAdmin bypasses the unlock-time gate.
	AsAdmin bool
}

func (s *CheckinService) CheckIn(ctx context.Context, input CheckInInput) (checkin.Checkin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheckinService.CheckIn")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return checkin.Checkin{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.rosterRepo.GetByID(ctx, playerID)
	if err != nil {
		return checkin.Checkin{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return checkin.Checkin{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	cfg, _, err := s.settingsRepo.GetConfig(ctx)
	if err != nil {
		return checkin.Checkin{}, fmt.Errorf("get settings: %w", err)
	}
	if !input.AsAdmin && !cfg.Unlocked(s.now()) {
		return checkin.Checkin{}, fmt.Errorf("%w: check-ins unlock at %s", ErrInvalidInput, cfg.UnlockTime.Format(time.RFC3339))
	}

	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return checkin.Checkin{}, fmt.Errorf("list check-ins: %w", err)
	}
	for _, c := range queue {
		if c.PlayerID == playerID {
			return checkin.Checkin{}, fmt.Errorf("%w: %s is already checked in", ErrInvalidInput, p.Name)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return checkin.Checkin{}, fmt.Errorf("generate check-in id: %w", err)
	}

	c := checkin.Checkin{
		ID:        id,
		PlayerID:  playerID,
		Name:      p.Name,
		Timestamp: s.now(),
	}
	if err := c.Validate(); err != nil {
		return checkin.Checkin{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkinRepo.Create(ctx, c); err != nil {
		return checkin.Checkin{}, fmt.Errorf("create check-in: %w", err)
	}

	s.logger.InfoContext(ctx, "player checked in", "player_id", playerID, "name", p.Name)

	return c, nil
}

// Remove deletes a check-in; everyone behind it moves up one spot by
// position alone.
func (s *CheckinService) Remove(ctx context.Context, checkinID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheckinService.Remove")
	defer span.End()

	checkinID = strings.TrimSpace(checkinID)
	if checkinID == "" {
		return fmt.Errorf("%w: check-in id is required", ErrInvalidInput)
	}

	queue, err := s.checkinRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list check-ins: %w", err)
	}
	found := false
	for _, c := range queue {
		if c.ID == checkinID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: check-in %s", ErrNotFound, checkinID)
	}

	if err := s.checkinRepo.Delete(ctx, checkinID); err != nil {
		return fmt.Errorf("delete check-in: %w", err)
	}

	return nil
}

// SetUnlockTime sets or clears the moment non-admin check-ins open.
func (s *CheckinService) SetUnlockTime(ctx context.Context, unlockTime *time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheckinService.SetUnlockTime")
	defer span.End()

	cfg, _, err := s.settingsRepo.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	cfg.UnlockTime = unlockTime
	if err := s.settingsRepo.SetConfig(ctx, cfg); err != nil {
		return fmt.Errorf("set settings: %w", err)
	}

	return nil
}
