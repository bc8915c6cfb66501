package rating

import (
	"math"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

// Default is the rating shown for players with no games and no manual
// attributes.
const Default = 65

const (
	floorOverall = 60
	maxOverall   = 99
)

// Attribute weights for the manual rating path. Control is what wins games
// on a small pitch, defending the least.
const (
	weightFitness  = 1.0
	weightControl  = 1.2
	weightShooting = 1.0
	weightDefense  = 0.8
)

// Overall computes a player's displayed rating. Manual attributes, when set,
// fully determine it; otherwise the rating is derived from the given stat
// block and form score. Pass the all-time block for the all-time view or an
// aggregated season block for season views.
func Overall(p roster.Player, stats roster.Stats, formScore float64) int {
	if p.Attributes != nil {
		return FromAttributes(*p.Attributes)
	}
	return FromStats(stats, formScore)
}

// FromAttributes maps the weighted attribute average onto the displayed
// scale.
func FromAttributes(a roster.Attributes) int {
	avg := (a.Fitness*weightFitness + a.Control*weightControl +
		a.Shooting*weightShooting + a.Defense*weightDefense) / 4
	return fromAverage(avg)
}

func fromAverage(avg float64) int {
	if avg == 0 {
		return floorOverall
	}
	base := 35 + avg*12
	if avg > 4.5 {
		base += 4
	}
	v := int(math.Round(base))
	if v > maxOverall {
		v = maxOverall
	}
	return v
}

// FromStats grows a rating from the 65 baseline: capped volume bonuses for
// games, wins and MOTM awards, per-game rate bonuses for goals, assists and
// clean sheets, an uncapped win-rate bonus, and a form bonus on top. Players
// under five games get two phantom games in the rate denominators so a hot
// first night does not produce an inflated rating.
func FromStats(s roster.Stats, formScore float64) int {
	if s.GamesPlayed == 0 {
		return Default
	}

	rating := float64(Default)
	rating += math.Min(float64(s.GamesPlayed)*0.1, 5)
	rating += math.Min(s.Wins*0.2, 5)
	rating += math.Min(float64(s.MOTMs)*0.5, 5)

	adjustedGames := float64(s.GamesPlayed)
	if s.GamesPlayed < 5 {
		adjustedGames += 2
	}
	rating += math.Min(float64(s.Goals)/adjustedGames*5, 10)
	rating += math.Min(float64(s.Assists)/adjustedGames*5, 5)
	rating += math.Min(float64(s.CleanSheets)/adjustedGames*10, 10)
	rating += s.Wins / adjustedGames * 10

	v := int(math.Round(rating) + math.Round(formScore/4))
	if v > maxOverall {
		v = maxOverall
	}
	return v
}
