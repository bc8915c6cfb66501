package match

import (
	"fmt"
	"time"
)

// Tally is a live per-player count kept while a match is being tracked.
type Tally struct {
	Side    Side
	Goals   int
	Assists int
}

// VoteCount is one candidate's man-of-the-match vote total. Callers supply
// candidates in the order their first vote was cast.
type VoteCount struct {
	PlayerID string
	Votes    int
}

// TallyVotes picks the man of the match: strictly the most votes wins, a tie
// keeps the candidate seen first, and zero votes means no award.
func TallyVotes(votes []VoteCount) string {
	winner := ""
	best := 0
	for _, v := range votes {
		if v.Votes > best {
			best = v.Votes
			winner = v.PlayerID
		}
	}

	return winner
}

// Finalize converts live tallies, own goals and the vote sheet into a match
// record. Own goals raise the benefiting side's score without crediting any
// scorer; the clean sheet goes to the side whose opponent finished on zero.
func Finalize(id string, date time.Time, tallies map[string]Tally, ownGoalsBlue, ownGoalsWhite int, votes []VoteCount, now time.Time) (Match, error) {
	if len(tallies) == 0 {
		return Match{}, fmt.Errorf("a match needs at least one stat line")
	}
	if ownGoalsBlue < 0 || ownGoalsWhite < 0 {
		return Match{}, fmt.Errorf("own goals cannot be negative")
	}

	blueScore := ownGoalsBlue
	whiteScore := ownGoalsWhite
	for playerID, t := range tallies {
		if playerID == "" {
			return Match{}, fmt.Errorf("tally player id is required")
		}
		if !t.Side.Valid() {
			return Match{}, fmt.Errorf("tally for player %s: invalid side %q", playerID, t.Side)
		}
		if t.Goals < 0 || t.Assists < 0 {
			return Match{}, fmt.Errorf("tally for player %s: counters cannot be negative", playerID)
		}
		if t.Side == SideBlue {
			blueScore += t.Goals
		} else {
			whiteScore += t.Goals
		}
	}

	blueWin := winCredit(blueScore, whiteScore)
	whiteWin := winCredit(whiteScore, blueScore)

	lines := make(map[string]Line, len(tallies))
	for playerID, t := range tallies {
		scored, conceded, win := blueScore, whiteScore, blueWin
		if t.Side == SideWhite {
			scored, conceded, win = whiteScore, blueScore, whiteWin
		}
		lines[playerID] = Line{
			Side:         t.Side,
			Goals:        t.Goals,
			Assists:      t.Assists,
			Win:          win,
			GoalsFor:     scored,
			GoalsAgainst: conceded,
			CleanSheet:   conceded == 0,
		}
	}

	m := Match{
		ID:            id,
		Date:          date,
		Lines:         lines,
		MOTM:          TallyVotes(votes),
		BlueScore:     blueScore,
		WhiteScore:    whiteScore,
		OwnGoalsBlue:  ownGoalsBlue,
		OwnGoalsWhite: ownGoalsWhite,
		CreatedAt:     now,
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}

	return m, nil
}

func winCredit(scored, conceded int) float64 {
	switch {
	case scored > conceded:
		return 1
	case scored == conceded:
		return 0.5
	default:
		return 0
	}
}
