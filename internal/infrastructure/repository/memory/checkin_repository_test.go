package memory

import (
	"context"
	"testing"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

func TestCheckinRepositoryOrdersByTimestamp(t *testing.T) {
	t.Parallel()

	repo := NewCheckinRepository()
	ctx := context.Background()
	base := time.Date(2026, time.March, 6, 18, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	_ = repo.Create(ctx, checkin.Checkin{ID: "c2", PlayerID: "p2", Name: "JT", Timestamp: base.Add(time.Minute)})
	_ = repo.Create(ctx, checkin.Checkin{ID: "c1", PlayerID: "p1", Name: "Amar", Timestamp: base})

	queue, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(queue) != 2 || queue[0].ID != "c1" || queue[1].ID != "c2" {
		t.Fatalf("queue should order by timestamp: %+v", queue)
	}

	if err := repo.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	queue, _ = repo.List(ctx)
	if len(queue) != 1 || queue[0].ID != "c2" {
		t.Fatalf("unexpected queue after delete: %+v", queue)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if queue, _ := repo.List(ctx); len(queue) != 0 {
		t.Fatalf("queue should be empty, got %+v", queue)
	}
}

func TestMatchRepositoryListsNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository(nil)
	ctx := context.Background()
	base := time.Date(2026, time.March, 6, 21, 0, 0, 0, time.UTC)

	_ = repo.Create(ctx, match.Match{ID: "m1", Date: base.AddDate(0, 0, -7)})
	_ = repo.Create(ctx, match.Match{ID: "m2", Date: base})

	matches, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "m2" {
		t.Fatalf("matches should list newest first: %+v", matches)
	}
}

func TestSettingsRepository(t *testing.T) {
	t.Parallel()

	repo := NewSettingsRepository()
	ctx := context.Background()

	if _, found, _ := repo.GetConfig(ctx); found {
		t.Fatal("config should start unset")
	}

	unlock := time.Date(2026, time.March, 6, 17, 0, 0, 0, time.UTC)
	if err := repo.SetConfig(ctx, settings.Config{UnlockTime: &unlock}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	cfg, found, _ := repo.GetConfig(ctx)
	if !found || cfg.UnlockTime == nil || !cfg.UnlockTime.Equal(unlock) {
		t.Fatalf("unexpected config: %+v found=%v", cfg, found)
	}

	updates, cancel, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	sheet := settings.PublishedTeams{Blue: []string{"p1"}, White: []string{"p2"}, PublishedAt: unlock}
	if err := repo.SetCurrentTeams(ctx, sheet); err != nil {
		t.Fatalf("set teams: %v", err)
	}

	select {
	case published := <-updates:
		if published == nil || len(published.Blue) != 1 {
			t.Fatalf("unexpected published sheet: %+v", published)
		}
	case <-time.After(time.Second):
		t.Fatal("no update after publish")
	}

	if err := repo.ClearCurrentTeams(ctx); err != nil {
		t.Fatalf("clear teams: %v", err)
	}
	select {
	case published := <-updates:
		if published != nil {
			t.Fatalf("withdrawal should push nil, got %+v", published)
		}
	case <-time.After(time.Second):
		t.Fatal("no update after clear")
	}

	if _, found, _ := repo.GetCurrentTeams(ctx); found {
		t.Fatal("sheet should be withdrawn")
	}
}
