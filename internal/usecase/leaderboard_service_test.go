package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

func attrs(v float64) *roster.Attributes {
	return &roster.Attributes{Fitness: v, Control: v, Shooting: v, Defense: v}
}

func TestLeaderboardTable(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "Amar", Attributes: attrs(5)},
		{ID: "p2", Name: "JT", Attributes: attrs(3)},
		{ID: "p3", Name: "Ghost"},
	}}
	svc := NewLeaderboardService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, nil, nil)

	rows, err := svc.Table(context.Background(), ViewAllTime)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("players with no games and no attributes are unrated, got %d rows", len(rows))
	}
	if rows[0].Player.ID != "p1" || rows[1].Player.ID != "p2" {
		t.Fatalf("rows should rank by rating: %s, %s", rows[0].Player.ID, rows[1].Player.ID)
	}
	if rows[0].Rating <= rows[1].Rating {
		t.Fatalf("ratings not descending: %d then %d", rows[0].Rating, rows[1].Rating)
	}
}

func TestLeaderboardTiesBreakOnName(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "zoe", Attributes: attrs(3)},
		{ID: "p2", Name: "Alex", Attributes: attrs(3)},
	}}
	svc := NewLeaderboardService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, nil, nil)

	rows, err := svc.Table(context.Background(), ViewAllTime)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if rows[0].Player.ID != "p2" {
		t.Fatalf("equal ratings should order by name, got %s first", rows[0].Player.ID)
	}
}

func TestLeaderboardSeasonView(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{
			ID:     "p1",
			Name:   "Amar",
			Stats:  roster.Stats{GamesPlayed: 100, Goals: 50, Wins: 55},
			Season: &roster.Stats{GamesPlayed: 4, Goals: 2, Wins: 2},
		},
	}}
	svc := NewLeaderboardService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, nil, nil)

	rows, err := svc.Table(context.Background(), ViewSeason)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if len(rows) != 1 || rows[0].Stats.GamesPlayed != 4 {
		t.Fatalf("season view should read the season block: %+v", rows)
	}
}

func TestLeaderboardUnknownView(t *testing.T) {
	t.Parallel()

	svc := NewLeaderboardService(&stubRosterRepo{}, &stubMatchRepo{}, &stubCheckinRepo{}, nil, nil)

	if _, err := svc.Table(context.Background(), View("weekly")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardIncludesDerivedStats(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "Amar", Stats: roster.Stats{GamesPlayed: 10, Goals: 3, Wins: 6}},
	}}
	matchRepo := &stubMatchRepo{matches: []match.Match{{
		ID:   "m1",
		Date: time.Date(2026, time.March, 6, 21, 0, 0, 0, time.UTC),
		Lines: map[string]match.Line{
			"p1": {Side: match.SideBlue, Goals: 2, Win: 1, GoalsFor: 3, GoalsAgainst: 1},
		},
		BlueScore: 3, WhiteScore: 1,
	}}}
	svc := NewLeaderboardService(rosterRepo, matchRepo, &stubCheckinRepo{}, nil, nil)

	rows, err := svc.Table(context.Background(), ViewAllTime)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if rows[0].Stats.GamesPlayed != 11 || rows[0].Stats.Goals != 5 || rows[0].Stats.Wins != 7 {
		t.Fatalf("stored and derived stats should combine: %+v", rows[0].Stats)
	}
	if rows[0].Form.WinStreak != 1 || rows[0].Form.Score == 0 {
		t.Fatalf("form should reflect the recorded match: %+v", rows[0].Form)
	}
}

func TestSquadListsEveryone(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{
		{ID: "p1", Name: "Amar", Attributes: attrs(4)},
		{ID: "p2", Name: "Ghost"},
	}}
	checkinRepo := &stubCheckinRepo{checkins: []checkin.Checkin{
		{ID: "c1", PlayerID: "p1", Name: "Amar", Timestamp: time.Now()},
	}}
	svc := NewLeaderboardService(rosterRepo, &stubMatchRepo{}, checkinRepo, nil, nil)

	members, err := svc.Squad(context.Background())
	if err != nil {
		t.Fatalf("squad: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("squad should include unrated players, got %d", len(members))
	}
	if members[0].Player.ID != "p1" || members[0].Status != checkin.StatusStarting {
		t.Fatalf("checked-in player should carry queue status: %+v", members[0])
	}
	if members[1].Status != "" {
		t.Fatalf("absent player should have no status: %q", members[1].Status)
	}
}
