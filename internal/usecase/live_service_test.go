package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{players: []roster.Player{{ID: "p1", Name: "Amar"}}}
	settingsRepo := &stubSettingsRepo{}
	svc := NewLiveService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, settingsRepo, nil)

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Players) != 1 || snapshot.Teams != nil {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	published := settings.PublishedTeams{Blue: []string{"p1"}, PublishedAt: time.Now()}
	if err := settingsRepo.SetCurrentTeams(context.Background(), published); err != nil {
		t.Fatalf("set teams: %v", err)
	}

	snapshot, err = svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.Teams == nil || len(snapshot.Teams.Blue) != 1 {
		t.Fatalf("published sheet should appear in the snapshot: %+v", snapshot.Teams)
	}
}

func TestWatchEmitsOnChange(t *testing.T) {
	t.Parallel()

	rosterRepo := &stubRosterRepo{}
	svc := NewLiveService(rosterRepo, &stubMatchRepo{}, &stubCheckinRepo{}, &stubSettingsRepo{}, nil)

	updates, stop, err := svc.Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	first := receiveSnapshot(t, updates)
	if len(first.Players) != 0 {
		t.Fatalf("initial snapshot should be empty: %+v", first)
	}

	if err := rosterRepo.Create(context.Background(), roster.Player{ID: "p1", Name: "Amar"}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	rosterRepo.push()

	for {
		next := receiveSnapshot(t, updates)
		if len(next.Players) == 1 {
			return
		}
	}
}

func receiveSnapshot(t *testing.T, updates <-chan DashboardSnapshot) DashboardSnapshot {
	t.Helper()

	select {
	case snapshot, ok := <-updates:
		if !ok {
			t.Fatal("snapshot channel closed early")
		}
		return snapshot
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return DashboardSnapshot{}
	}
}
