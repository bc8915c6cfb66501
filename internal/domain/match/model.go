package match

import (
	"fmt"
	"time"
)

// Side identifies one of the two fixed teams in a session.
type Side string

const (
	SideBlue  Side = "blue"
	SideWhite Side = "white"
)

func (s Side) Valid() bool {
	return s == SideBlue || s == SideWhite
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideBlue {
		return SideWhite
	}
	return SideBlue
}

// Line is one player's finalized contribution to a match. Win is fractional:
// 1 for a win, 0.5 for a draw, 0 for a loss.
type Line struct {
	Side         Side
	Goals        int
	Assists      int
	Win          float64
	GoalsFor     int
	GoalsAgainst int
	CleanSheet   bool
}

func (l Line) Validate() error {
	if !l.Side.Valid() {
		return fmt.Errorf("invalid side %q", l.Side)
	}
	if l.Goals < 0 || l.Assists < 0 || l.GoalsFor < 0 || l.GoalsAgainst < 0 {
		return fmt.Errorf("line counters cannot be negative")
	}
	if l.Win != 0 && l.Win != 0.5 && l.Win != 1 {
		return fmt.Errorf("win credit must be 0, 0.5 or 1: %v", l.Win)
	}

	return nil
}

// Match is one finalized session. Lines is keyed by player ID and only
// contains players who took part; OwnGoalsBlue/OwnGoalsWhite are goals
// credited to that side's score without a scorer.
type Match struct {
	ID            string
	Date          time.Time
	Lines         map[string]Line
	MOTM          string
	BlueScore     int
	WhiteScore    int
	OwnGoalsBlue  int
	OwnGoalsWhite int
	CreatedAt     time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.BlueScore < 0 || m.WhiteScore < 0 || m.OwnGoalsBlue < 0 || m.OwnGoalsWhite < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	for playerID, line := range m.Lines {
		if playerID == "" {
			return fmt.Errorf("line player id is required")
		}
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line for player %s: %w", playerID, err)
		}
	}
	if m.MOTM != "" {
		if _, ok := m.Lines[m.MOTM]; !ok {
			return fmt.Errorf("motm %s has no line in the match", m.MOTM)
		}
	}

	return nil
}

// Played reports whether the player has a stat line in this match.
func (m Match) Played(playerID string) bool {
	_, ok := m.Lines[playerID]
	return ok
}
