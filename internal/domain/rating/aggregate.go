package rating

import (
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

// Aggregate sums a player's stat lines across the given matches. MOTM awards
// count whenever the match names the player, even without a stat line, so a
// correction that removed the line keeps the award. Re-running over the same
// matches yields the same block.
func Aggregate(playerID string, matches []match.Match) roster.Stats {
	var s roster.Stats
	for _, m := range matches {
		if line, ok := m.Lines[playerID]; ok {
			s.GamesPlayed++
			s.Goals += line.Goals
			s.Assists += line.Assists
			s.Wins += line.Win
			s.GoalsFor += line.GoalsFor
			s.GoalsAgainst += line.GoalsAgainst
			if line.CleanSheet {
				s.CleanSheets++
			}
		}
		if m.MOTM == playerID {
			s.MOTMs++
		}
	}

	return s
}
