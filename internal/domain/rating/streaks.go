package rating

import (
	"sort"

	"github.com/fridayfut/fridayfut/internal/domain/match"
)

// Form summarizes a player's run of recent matches. Streak counters run over
// the player's own played matches from the most recent backwards and each
// halts independently at its first non-qualifying match; PlayedStreak runs
// over the full match list and halts at the first match the player sat out.
type Form struct {
	WinStreak        int
	LossStreak       int
	GoalStreak       int
	AssistStreak     int
	CleanSheetStreak int
	PlayedStreak     int
	Last5            []string
	Score            float64
}

const formScoreCap = 20

// Streaks computes the player's form from the given matches, in any order.
func Streaks(playerID string, matches []match.Match) Form {
	ordered := make([]match.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})

	f := Form{Last5: []string{}}

	for _, m := range ordered {
		if !m.Played(playerID) {
			break
		}
		f.PlayedStreak++
	}

	played := make([]match.Match, 0, len(ordered))
	for _, m := range ordered {
		if m.Played(playerID) {
			played = append(played, m)
		}
	}

	for i, m := range played {
		line := m.Lines[playerID]

		if line.Win == 1 && i == f.WinStreak {
			f.WinStreak++
		}
		if line.Win == 0 && i == f.LossStreak {
			f.LossStreak++
		}
		if line.Goals > 0 && i == f.GoalStreak {
			f.GoalStreak++
		}
		if line.Assists > 0 && i == f.AssistStreak {
			f.AssistStreak++
		}
		if line.CleanSheet && i == f.CleanSheetStreak {
			f.CleanSheetStreak++
		}

		if i < 5 {
			switch line.Win {
			case 1:
				f.Last5 = append(f.Last5, "W")
				f.Score += 3
			case 0.5:
				f.Last5 = append(f.Last5, "D")
				f.Score++
			default:
				f.Last5 = append(f.Last5, "L")
			}
			f.Score += float64(line.Goals)
			f.Score += float64(line.Assists) * 0.5
			if line.CleanSheet {
				f.Score += 0.5
			}
		}
	}

	if f.Score > formScoreCap {
		f.Score = formScoreCap
	}
	if f.Score < 0 {
		f.Score = 0
	}

	return f
}
