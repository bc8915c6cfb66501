package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// RosterService manages the player pool.
type RosterService struct {
	rosterRepo roster.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewRosterService(rosterRepo roster.Repository, idGen idgen.Generator, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.rosterRepo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	return p, nil
}

type CreatePlayerInput struct {
	Name     string
	PhotoURL string
}

func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return roster.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	existing, err := s.rosterRepo.List(ctx)
	if err != nil {
		return roster.Player{}, fmt.Errorf("list players: %w", err)
	}
	for _, p := range existing {
		if roster.SameName(p.Name, name) {
			return roster.Player{}, fmt.Errorf("%w: %q is already on the roster", ErrInvalidInput, name)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return roster.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := roster.Player{
		ID:        id,
		Name:      name,
		PhotoURL:  strings.TrimSpace(input.PhotoURL),
		CreatedAt: s.now(),
	}
	if err := p.Validate(); err != nil {
		return roster.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Create(ctx, p); err != nil {
		return roster.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", p.ID, "name", p.Name)

	return p, nil
}

// UpdateAttributes sets or clears a player's manual skill ratings. A nil
// input switches the player back to the statistical rating path.
func (s *RosterService) UpdateAttributes(ctx context.Context, playerID string, attrs *roster.Attributes) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateAttributes")
	defer span.End()

	p, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return roster.Player{}, err
	}

	if attrs != nil {
		if err := attrs.Validate(); err != nil {
			return roster.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		copied := *attrs
		p.Attributes = &copied
	} else {
		p.Attributes = nil
	}

	if err := s.rosterRepo.Update(ctx, p); err != nil {
		return roster.Player{}, fmt.Errorf("update player: %w", err)
	}

	return p, nil
}

func (s *RosterService) SetPhoto(ctx context.Context, playerID, photoURL string) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetPhoto")
	defer span.End()

	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return roster.Player{}, fmt.Errorf("%w: photo url is required", ErrInvalidInput)
	}

	p, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return roster.Player{}, err
	}

	p.PhotoURL = photoURL
	if err := s.rosterRepo.Update(ctx, p); err != nil {
		return roster.Player{}, fmt.Errorf("update player: %w", err)
	}

	return p, nil
}

func (s *RosterService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer")
	defer span.End()

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return err
	}

	if err := s.rosterRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)

	return nil
}
