package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// AdminService covers the destructive and bootstrap operations behind the
// admin code: seeding the historic roster and wiping the group data.
type AdminService struct {
	rosterRepo  roster.Repository
	matchRepo   match.Repository
	checkinRepo checkin.Repository
	idGen       idgen.Generator
	logger      *slog.Logger
	now         func() time.Time
}

func NewAdminService(
	rosterRepo roster.Repository,
	matchRepo match.Repository,
	checkinRepo checkin.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminService{
		rosterRepo:  rosterRepo,
		matchRepo:   matchRepo,
		checkinRepo: checkinRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

type SeedSummary struct {
	Created int
	Updated int
}

// SeedLegends upserts the historic stat lines by name: a known player gets
// the historic games/goals/wins written over their all-time block, a new
// name joins the roster with them. Applied as one batch.
func (s *AdminService) SeedLegends(ctx context.Context) (SeedSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SeedLegends")
	defer span.End()

	existing, err := s.rosterRepo.List(ctx)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("list players: %w", err)
	}

	var summary SeedSummary
	batch := make([]roster.Player, 0, len(legends))
	for _, legend := range legends {
		var matched *roster.Player
		for i := range existing {
			if roster.SameName(existing[i].Name, legend.Name) {
				matched = &existing[i]
				break
			}
		}

		if matched != nil {
			p := *matched
			p.Stats.GamesPlayed = legend.Stats.GamesPlayed
			p.Stats.Goals = legend.Stats.Goals
			p.Stats.Wins = legend.Stats.Wins
			batch = append(batch, p)
			summary.Updated++
			continue
		}

		id, err := s.idGen.NewID()
		if err != nil {
			return SeedSummary{}, fmt.Errorf("generate player id: %w", err)
		}
		p := legend
		p.ID = id
		p.CreatedAt = s.now()
		batch = append(batch, p)
		summary.Created++
	}

	if err := s.rosterRepo.UpsertBatch(ctx, batch); err != nil {
		return SeedSummary{}, fmt.Errorf("upsert seed batch: %w", err)
	}

	s.logger.InfoContext(ctx, "legend roster seeded", "created", summary.Created, "updated", summary.Updated)

	return summary, nil
}

// Reset wipes players, matches and the check-in queue.
func (s *AdminService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Reset")
	defer span.End()

	if err := s.checkinRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete check-ins: %w", err)
	}
	if err := s.matchRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete matches: %w", err)
	}
	if err := s.rosterRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	s.logger.WarnContext(ctx, "group data reset")

	return nil
}

func legend(name string, games int, goals int, wins float64) roster.Player {
	return roster.Player{
		Name:  name,
		Stats: roster.Stats{GamesPlayed: games, Goals: goals, Wins: wins},
	}
}

func ratedLegend(name string, games int, goals int, wins float64, rating float64) roster.Player {
	p := legend(name, games, goals, wins)
	p.Attributes = &roster.Attributes{Fitness: rating, Control: rating, Shooting: rating, Defense: rating}
	return p
}

// The group's historic stats, carried over from years of paper scorekeeping.
var legends = []roster.Player{
	ratedLegend("Amar", 102, 53, 57, 3.6),
	ratedLegend("JT", 68, 46, 32, 3.6),
	legend("Johann", 67, 43, 30.5),
	legend("Nico", 65, 37, 35),
	ratedLegend("Jarrad", 50, 35, 20, 3.1),
	legend("Duncan", 58, 29, 35),
	ratedLegend("Tim", 51, 36, 36, 4.0),
	legend("Weylu", 49, 23, 23),
	legend("Wafik", 35, 11, 17),
	legend("Derek", 31, 1, 15),
	legend("G", 26, 28, 13),
	legend("Zoran", 22, 3, 11),
	legend("Travers", 20, 1, 10),
	legend("Kristof", 16, 15, 8),
	legend("Josh", 14, 14, 7),
	legend("Greg", 14, 4, 4.5),
	ratedLegend("Figo", 13, 25, 9, 4.5),
	legend("Gino", 13, 1, 6.5),
	legend("Oz", 11, 3, 3.5),
	legend("Max", 10, 3, 5),
	legend("Dorian", 8, 1, 4),
	legend("Olly", 7, 2, 3.5),
	legend("Austin", 7, 2, 3.5),
	legend("Vin", 7, 2, 3.5),
	legend("Johnny", 5, 5, 4),
	legend("Drew", 4, 6, 3),
	legend("Sal", 4, 5, 2),
	legend("Jeff", 3, 1, 2),
	legend("Gabe D", 3, 2, 2),
	legend("Bruce", 3, 1, 1),
	legend("Gary", 3, 1, 1),
	legend("Hadi", 3, 1, 0),
	legend("Carter", 3, 1, 0),
	legend("Mike", 3, 1, 0),
	legend("Dante", 3, 1, 0),
	legend("Jonathan", 2, 3, 1),
	legend("Rachael", 2, 0, 1),
	legend("Anh", 2, 0, 1),
	legend("Santi", 1, 2, 0),
	legend("Italian", 1, 2, 0),
	ratedLegend("Carlos", 0, 0, 0, 4.8),
	ratedLegend("Jared", 4, 0, 2, 3.6),
}
