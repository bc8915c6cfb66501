package teamsheet

import (
	"errors"
	"math"
	"sort"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

// ErrNotEnoughPlayers is returned when fewer than two players are available
// to deal into teams.
var ErrNotEnoughPlayers = errors.New("need at least two players to balance teams")

// Squads is a generated team sheet.
type Squads struct {
	Blue  []roster.Player
	White []roster.Player
}

// Balance deals players into two sides with a snake draft over descending
// rating: positions 0 and 3 of every block of four go blue, 1 and 2 white.
// The sort is stable, so equal ratings keep the input order.
func Balance(players []roster.Player, overallByID map[string]int) (Squads, error) {
	if len(players) < 2 {
		return Squads{}, ErrNotEnoughPlayers
	}

	ordered := make([]roster.Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return overallByID[ordered[i].ID] > overallByID[ordered[j].ID]
	})

	var s Squads
	for i, p := range ordered {
		switch i % 4 {
		case 0, 3:
			s.Blue = append(s.Blue, p)
		default:
			s.White = append(s.White, p)
		}
	}

	return s, nil
}

// Move transfers the player to the other side. It reports whether the player
// was found on either side.
func (s *Squads) Move(playerID string) bool {
	for i, p := range s.Blue {
		if p.ID == playerID {
			s.Blue = append(s.Blue[:i], s.Blue[i+1:]...)
			s.White = append(s.White, p)
			return true
		}
	}
	for i, p := range s.White {
		if p.ID == playerID {
			s.White = append(s.White[:i], s.White[i+1:]...)
			s.Blue = append(s.Blue, p)
			return true
		}
	}

	return false
}

// Average returns the rounded mean overall of a side, zero when empty.
func Average(team []roster.Player, overallByID map[string]int) int {
	if len(team) == 0 {
		return 0
	}
	sum := 0
	for _, p := range team {
		sum += overallByID[p.ID]
	}
	return int(math.Round(float64(sum) / float64(len(team))))
}
