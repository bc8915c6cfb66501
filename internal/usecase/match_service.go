package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// MatchService records finalized sessions. Stats views derive from the match
// log, so saving a match never writes player totals anywhere else.
type MatchService struct {
	matchRepo  match.Repository
	rosterRepo roster.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewMatchService(matchRepo match.Repository, rosterRepo roster.Repository, idGen idgen.Generator, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type SaveMatchInput struct {
	Date          time.Time
	Tallies       map[string]match.Tally
	OwnGoalsBlue  int
	OwnGoalsWhite int
	Votes         []match.VoteCount
}

func (s *MatchService) SaveMatch(ctx context.Context, input SaveMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SaveMatch")
	defer span.End()

	if err := s.verifyPlayersExist(ctx, input.Tallies); err != nil {
		return match.Match{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	m, err := match.Finalize(id, date, input.Tallies, input.OwnGoalsBlue, input.OwnGoalsWhite, input.Votes, s.now())
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match saved",
		"match_id", m.ID,
		"blue", m.BlueScore,
		"white", m.WhiteScore,
		"players", len(m.Lines),
	)

	return m, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	return m, nil
}

// UpdateMatch replaces the whole record: the edit is re-finalized from the
// submitted tallies so scores, win credit and clean sheets stay consistent.
func (s *MatchService) UpdateMatch(ctx context.Context, matchID string, input SaveMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateMatch")
	defer span.End()

	existing, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if err := s.verifyPlayersExist(ctx, input.Tallies); err != nil {
		return match.Match{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	m, err := match.Finalize(existing.ID, date, input.Tallies, input.OwnGoalsBlue, input.OwnGoalsWhite, input.Votes, s.now())
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m.CreatedAt = existing.CreatedAt

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match updated", "match_id", m.ID)

	return m, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteMatch")
	defer span.End()

	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)

	return nil
}

func (s *MatchService) verifyPlayersExist(ctx context.Context, tallies map[string]match.Tally) error {
	if len(tallies) == 0 {
		return fmt.Errorf("%w: a match needs at least one stat line", ErrInvalidInput)
	}

	for playerID := range tallies {
		_, found, err := s.rosterRepo.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}
	}

	return nil
}
