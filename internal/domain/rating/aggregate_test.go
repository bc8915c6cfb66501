package rating

import (
	"testing"

	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

func TestAggregateSumsLines(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		matchOn(3, map[string]match.Line{
			"p1": {Side: match.SideBlue, Goals: 2, Assists: 1, Win: 1, GoalsFor: 4, GoalsAgainst: 0, CleanSheet: true},
		}, "p1"),
		matchOn(4, map[string]match.Line{
			"p1": {Side: match.SideWhite, Goals: 0, Assists: 2, Win: 0.5, GoalsFor: 2, GoalsAgainst: 2},
		}, ""),
	}

	got := Aggregate("p1", matches)
	want := roster.Stats{
		GamesPlayed:  2,
		Goals:        2,
		Assists:      3,
		Wins:         1.5,
		CleanSheets:  1,
		GoalsFor:     6,
		GoalsAgainst: 2,
		MOTMs:        1,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAggregateMOTMWithoutLine(t *testing.T) {
	t.Parallel()

	// the award survives even when a correction removed the stat line
	m := matchOn(5, map[string]match.Line{"other": drawLine()}, "p1")

	got := Aggregate("p1", []match.Match{m})
	if got.MOTMs != 1 {
		t.Fatalf("expected motm counted without a line, got %+v", got)
	}
	if got.GamesPlayed != 0 {
		t.Fatalf("no line means no game played, got %+v", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		matchOn(6, map[string]match.Line{"p1": winLine(1, 1, false)}, ""),
	}

	first := Aggregate("p1", matches)
	second := Aggregate("p1", matches)
	if first != second {
		t.Fatalf("aggregation must be repeatable: %+v vs %+v", first, second)
	}
}
