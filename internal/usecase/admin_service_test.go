package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

func TestSeedLegendsCreatesRoster(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{}
	svc := NewAdminService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, &seqIDGen{}, nil)

	summary, err := svc.SeedLegends(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if summary.Created != len(legends) || summary.Updated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	players, _ := rosterRepo.List(context.Background())
	byName := make(map[string]roster.Player, len(players))
	for _, p := range players {
		if p.ID == "" {
			t.Fatalf("seeded player without id: %+v", p)
		}
		byName[p.Name] = p
	}

	amar := byName["Amar"]
	if amar.Stats.GamesPlayed != 102 || amar.Stats.Goals != 53 || amar.Stats.Wins != 57 {
		t.Fatalf("unexpected seed line for Amar: %+v", amar.Stats)
	}
	johann := byName["Johann"]
	if johann.Stats.Wins != 30.5 {
		t.Fatalf("fractional wins should survive the seed: %+v", johann.Stats)
	}
	if byName["Carlos"].Attributes == nil {
		t.Fatal("rated seeds should carry attributes")
	}
	if byName["Nico"].Attributes != nil {
		t.Fatal("unrated seeds should not carry attributes")
	}
}

func TestSeedLegendsOverwritesKnownPlayers(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{{
		ID:   "p1",
		Name: "amar",
		Stats: roster.Stats{
			GamesPlayed: 5,
			Goals:       2,
			Assists:     7,
			Wins:        3,
			CleanSheets: 4,
		},
	}}}
	svc := NewAdminService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, &seqIDGen{}, nil)

	summary, err := svc.SeedLegends(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if summary.Updated != 1 || summary.Created != len(legends)-1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	p, _, _ := rosterRepo.GetByID(context.Background(), "p1")
	if p.Stats.GamesPlayed != 102 || p.Stats.Goals != 53 || p.Stats.Wins != 57 {
		t.Fatalf("seed should overwrite games, goals and wins: %+v", p.Stats)
	}
	if p.Stats.Assists != 7 || p.Stats.CleanSheets != 4 {
		t.Fatalf("seed should leave the other counters alone: %+v", p.Stats)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{{ID: "p1", Name: "Amar"}}}
	matchRepo := &stubMatchRepo{matches: []match.Match{{ID: "m1", Date: time.Now()}}}
	checkinRepo := &stubCheckinRepo{checkins: []checkin.Checkin{{ID: "c1", PlayerID: "p1", Name: "Amar", Timestamp: time.Now()}}}
	svc := NewAdminService(rosterRepo, matchRepo, checkinRepo, &seqIDGen{}, nil)

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if players, _ := rosterRepo.List(context.Background()); len(players) != 0 {
		t.Fatalf("players should be wiped, got %d", len(players))
	}
	if matches, _ := matchRepo.List(context.Background()); len(matches) != 0 {
		t.Fatalf("matches should be wiped, got %d", len(matches))
	}
	if queue, _ := checkinRepo.List(context.Background()); len(queue) != 0 {
		t.Fatalf("queue should be wiped, got %d", len(queue))
	}
}
