package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

func TestImportAllTimeCreatesPlayers(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{}
	svc := NewImportService(rosterRepo, &seqIDGen{}, nil)

	summary, err := svc.ImportAllTime(context.Background(), "Name,GamesPlayed,Goals,Wins\nAmar,102,53,57\nJT,68,46,32\n")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Created != 2 || summary.Updated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	players, _ := rosterRepo.List(context.Background())
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	amar := players[0]
	if amar.Name != "Amar" || amar.Stats.GamesPlayed != 102 || amar.Stats.Goals != 53 || amar.Stats.Wins != 57 {
		t.Fatalf("unexpected imported stats: %+v", amar.Stats)
	}
	if amar.Stats.Assists != 0 {
		t.Fatalf("imported player should have zero assists, got %d", amar.Stats.Assists)
	}
}

func TestImportAllTimeMergesIntoExisting(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "amar", Stats: roster.Stats{GamesPlayed: 10, Goals: 4, Assists: 3, Wins: 5}},
	}}
	svc := NewImportService(rosterRepo, &seqIDGen{}, nil)

	summary, err := svc.ImportAllTime(context.Background(), "Name,GamesPlayed,Goals,Wins\nAmar,102,53,57\n")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	p, _, _ := rosterRepo.GetByID(context.Background(), "p1")
	if p.Stats.GamesPlayed != 112 || p.Stats.Goals != 57 || p.Stats.Wins != 62 {
		t.Fatalf("totals should add onto the existing block: %+v", p.Stats)
	}
	if p.Stats.Assists != 3 {
		t.Fatalf("assists should be untouched, got %d", p.Stats.Assists)
	}
}

func TestImportAllTimeSumsDuplicateRows(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{}
	svc := NewImportService(rosterRepo, &seqIDGen{}, nil)

	summary, err := svc.ImportAllTime(context.Background(), "Name,GamesPlayed,Goals,Wins\nAmar,10,5,6\nAMAR,2,1,0.5\n")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("duplicate rows should collapse to one player: %+v", summary)
	}

	players, _ := rosterRepo.List(context.Background())
	if players[0].Stats.GamesPlayed != 12 || players[0].Stats.Goals != 6 || players[0].Stats.Wins != 6.5 {
		t.Fatalf("duplicate rows should sum: %+v", players[0].Stats)
	}
}

func TestImportAllTimeSkipsBadRows(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{}
	svc := NewImportService(rosterRepo, &seqIDGen{}, nil)

	summary, err := svc.ImportAllTime(context.Background(), "Name,GamesPlayed,Goals,Wins\nAmar,102,53,57\nbroken,row\nJT,x,46,32\n")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("only the valid row should land: %+v", summary)
	}
}

func TestImportAllTimeRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := NewImportService(&stubRosterRepo{}, &seqIDGen{}, nil)

	cases := map[string]string{
		"missing header columns": "Player,Score\nAmar,10\n",
		"header only":            "Name,GamesPlayed,Goals,Wins",
		"no valid rows":          "Name,GamesPlayed,Goals,Wins\nbroken,row\n",
		"empty":                  "",
	}
	for name, csvText := range cases {
		if _, err := svc.ImportAllTime(context.Background(), csvText); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestImportSeasonFillsSeasonBlock(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "Amar", Stats: roster.Stats{GamesPlayed: 100, Goals: 50, Wins: 55}},
	}}
	svc := NewImportService(rosterRepo, &seqIDGen{}, nil)

	summary, err := svc.ImportSeason(context.Background(), "Name,Games,Wins,Goals,Assists,GoalsFor,GoalsAgainst,MOTM\nAmar,10,6,12,4,30,18,2\nNewbie,3,1.5,2,1,9,8,0\n")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Created != 1 || summary.Updated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	p, _, _ := rosterRepo.GetByID(context.Background(), "p1")
	if p.Season == nil {
		t.Fatal("season block should be set")
	}
	if p.Season.GamesPlayed != 10 || p.Season.Wins != 6 || p.Season.Goals != 12 || p.Season.Assists != 4 {
		t.Fatalf("unexpected season block: %+v", *p.Season)
	}
	if p.Season.GoalsFor != 30 || p.Season.GoalsAgainst != 18 || p.Season.MOTMs != 2 {
		t.Fatalf("unexpected season block: %+v", *p.Season)
	}
	if p.Stats.GamesPlayed != 100 {
		t.Fatalf("all-time block should be untouched: %+v", p.Stats)
	}
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	svc := NewImportService(&stubRosterRepo{}, &seqIDGen{}, nil)

	allTime := svc.TemplateAllTime()
	if !strings.HasPrefix(allTime, "Name,GamesPlayed,Goals,Wins\n") || !strings.Contains(allTime, "Amar,102,53,57") {
		t.Fatalf("unexpected all-time template: %q", allTime)
	}

	season := svc.TemplateSeason()
	if !strings.HasPrefix(season, "Name,Games,Wins,Goals,Assists,GoalsFor,GoalsAgainst,MOTM\n") {
		t.Fatalf("unexpected season template: %q", season)
	}

	// Templates must round-trip through their own importers.
	if _, err := svc.ImportAllTime(context.Background(), allTime); err != nil {
		t.Fatalf("all-time template does not import: %v", err)
	}
	if _, err := svc.ImportSeason(context.Background(), season); err != nil {
		t.Fatalf("season template does not import: %v", err)
	}
}
