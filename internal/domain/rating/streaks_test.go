package rating

import (
	"testing"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/match"
)

func matchOn(day int, lines map[string]match.Line, motm string) match.Match {
	return match.Match{
		ID:    time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Date:  time.Date(2026, 1, day, 20, 0, 0, 0, time.UTC),
		Lines: lines,
		MOTM:  motm,
	}
}

func winLine(goals, assists int, cleanSheet bool) match.Line {
	return match.Line{Side: match.SideBlue, Goals: goals, Assists: assists, Win: 1, GoalsFor: 3, CleanSheet: cleanSheet}
}

func lossLine(goals int) match.Line {
	return match.Line{Side: match.SideWhite, Goals: goals, Win: 0, GoalsAgainst: 3}
}

func drawLine() match.Line {
	return match.Line{Side: match.SideBlue, Win: 0.5, GoalsFor: 1, GoalsAgainst: 1}
}

func TestStreaksAbsenceStopsPlayedStreakOnly(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		matchOn(10, map[string]match.Line{"p1": winLine(1, 0, false)}, ""),
		matchOn(9, map[string]match.Line{"other": winLine(0, 0, false)}, ""),
		matchOn(8, map[string]match.Line{"p1": winLine(2, 0, false)}, ""),
	}

	f := Streaks("p1", matches)
	if f.PlayedStreak != 1 {
		t.Fatalf("expected played streak 1 across the absence, got %d", f.PlayedStreak)
	}
	if f.WinStreak != 2 {
		t.Fatalf("win streak must skip matches the player sat out, expected 2, got %d", f.WinStreak)
	}
	if f.GoalStreak != 2 {
		t.Fatalf("expected goal streak 2, got %d", f.GoalStreak)
	}
}

func TestStreaksCountersHaltIndependently(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		matchOn(12, map[string]match.Line{"p1": winLine(1, 1, true)}, ""),
		matchOn(11, map[string]match.Line{"p1": winLine(0, 1, false)}, ""),
		matchOn(10, map[string]match.Line{"p1": lossLine(2)}, ""),
	}

	f := Streaks("p1", matches)
	if f.WinStreak != 2 {
		t.Fatalf("expected win streak 2, got %d", f.WinStreak)
	}
	if f.GoalStreak != 1 {
		t.Fatalf("goal streak halts at the scoreless win, expected 1, got %d", f.GoalStreak)
	}
	if f.AssistStreak != 2 {
		t.Fatalf("expected assist streak 2, got %d", f.AssistStreak)
	}
	if f.CleanSheetStreak != 1 {
		t.Fatalf("expected clean-sheet streak 1, got %d", f.CleanSheetStreak)
	}
	if f.LossStreak != 0 {
		t.Fatalf("most recent match was a win, expected loss streak 0, got %d", f.LossStreak)
	}
}

func TestStreaksLast5AndScore(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		matchOn(15, map[string]match.Line{"p1": winLine(2, 0, true)}, ""),
		matchOn(14, map[string]match.Line{"p1": drawLine()}, ""),
		matchOn(13, map[string]match.Line{"p1": lossLine(1)}, ""),
	}

	f := Streaks("p1", matches)
	want := []string{"W", "D", "L"}
	if len(f.Last5) != len(want) {
		t.Fatalf("expected %d results, got %v", len(want), f.Last5)
	}
	for i, r := range want {
		if f.Last5[i] != r {
			t.Fatalf("expected last5 %v, got %v", want, f.Last5)
		}
	}

	// win 3 + 2 goals + 0.5 clean sheet, draw 1, loss 0 + 1 goal
	if f.Score != 7.5 {
		t.Fatalf("expected form score 7.5, got %v", f.Score)
	}
}

func TestStreaksScoreCapped(t *testing.T) {
	t.Parallel()

	matches := make([]match.Match, 0, 5)
	for day := 1; day <= 5; day++ {
		matches = append(matches, matchOn(day, map[string]match.Line{"p1": winLine(5, 4, true)}, ""))
	}

	f := Streaks("p1", matches)
	if f.Score != formScoreCap {
		t.Fatalf("expected form score capped at %d, got %v", formScoreCap, f.Score)
	}
}

func TestStreaksOnlyFiveMatchesScore(t *testing.T) {
	t.Parallel()

	matches := make([]match.Match, 0, 7)
	for day := 1; day <= 7; day++ {
		matches = append(matches, matchOn(day, map[string]match.Line{"p1": drawLine()}, ""))
	}

	f := Streaks("p1", matches)
	if f.Score != 5 {
		t.Fatalf("form window is five matches, expected score 5, got %v", f.Score)
	}
	if len(f.Last5) != 5 {
		t.Fatalf("expected five results, got %d", len(f.Last5))
	}
}

func TestStreaksNoMatches(t *testing.T) {
	t.Parallel()

	f := Streaks("p1", nil)
	if f.PlayedStreak != 0 || f.Score != 0 || len(f.Last5) != 0 {
		t.Fatalf("expected empty form, got %+v", f)
	}
}
