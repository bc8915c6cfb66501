package roster

import (
	"fmt"
	"strings"
	"time"
)

// Stats is one cumulative block of per-player totals. The same shape is used
// for the all-time block, the stored season snapshot and aggregates derived
// from loaded matches; every field defaults to zero.
type Stats struct {
	GamesPlayed  int
	Goals        int
	Assists      int
	Wins         float64
	CleanSheets  int
	GoalsFor     int
	GoalsAgainst int
	MOTMs        int
}

// Add returns the field-wise sum of two stat blocks.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		GamesPlayed:  s.GamesPlayed + other.GamesPlayed,
		Goals:        s.Goals + other.Goals,
		Assists:      s.Assists + other.Assists,
		Wins:         s.Wins + other.Wins,
		CleanSheets:  s.CleanSheets + other.CleanSheets,
		GoalsFor:     s.GoalsFor + other.GoalsFor,
		GoalsAgainst: s.GoalsAgainst + other.GoalsAgainst,
		MOTMs:        s.MOTMs + other.MOTMs,
	}
}

func (s Stats) Validate() error {
	if s.GamesPlayed < 0 || s.Goals < 0 || s.Assists < 0 || s.CleanSheets < 0 ||
		s.GoalsFor < 0 || s.GoalsAgainst < 0 || s.MOTMs < 0 {
		return fmt.Errorf("stats counters cannot be negative")
	}
	if s.Wins < 0 {
		return fmt.Errorf("wins cannot be negative")
	}

	return nil
}

// Attributes are the manually assigned skill sliders. When present on a
// player they fully determine the overall rating and match statistics are
// ignored for rating purposes.
type Attributes struct {
	Fitness  float64
	Control  float64
	Shooting float64
	Defense  float64
}

func (a Attributes) Validate() error {
	for name, v := range map[string]float64{
		"fitness":  a.Fitness,
		"control":  a.Control,
		"shooting": a.Shooting,
		"defense":  a.Defense,
	} {
		if v < 1 || v > 5 {
			return fmt.Errorf("attribute %s must be within [1,5]: %v", name, v)
		}
	}

	return nil
}

// Player is one member of the roster pool.
type Player struct {
	ID         string
	Name       string
	Stats      Stats
	Season     *Stats
	Attributes *Attributes
	PhotoURL   string
	CreatedAt  time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if err := p.Stats.Validate(); err != nil {
		return fmt.Errorf("all-time stats: %w", err)
	}
	if p.Season != nil {
		if err := p.Season.Validate(); err != nil {
			return fmt.Errorf("season stats: %w", err)
		}
	}
	if p.Attributes != nil {
		if err := p.Attributes.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// SeasonStats returns the stored season snapshot, zero-valued when absent.
func (p Player) SeasonStats() Stats {
	if p.Season == nil {
		return Stats{}
	}
	return *p.Season
}

// SameName compares roster names the way uniqueness is enforced.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
