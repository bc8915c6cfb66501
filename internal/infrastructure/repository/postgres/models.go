package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

type playerTableModel struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Stats      []byte    `db:"stats"`
	Season     []byte    `db:"season"`
	Attributes []byte    `db:"attributes"`
	PhotoURL   string    `db:"photo_url"`
	CreatedAt  time.Time `db:"created_at"`
}

type statsDoc struct {
	GamesPlayed  int     `json:"games_played"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Wins         float64 `json:"wins"`
	CleanSheets  int     `json:"clean_sheets"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	MOTMs        int     `json:"motms"`
}

type attributesDoc struct {
	Fitness  float64 `json:"fitness"`
	Control  float64 `json:"control"`
	Shooting float64 `json:"shooting"`
	Defense  float64 `json:"defense"`
}

func statsToDoc(s roster.Stats) statsDoc {
	return statsDoc(s)
}

func statsFromDoc(d statsDoc) roster.Stats {
	return roster.Stats(d)
}

func playerToTableModel(p roster.Player) (playerTableModel, error) {
	stats, err := sonic.Marshal(statsToDoc(p.Stats))
	if err != nil {
		return playerTableModel{}, crerr.Wrap(err, "marshal player stats")
	}

	row := playerTableModel{
		ID:        p.ID,
		Name:      p.Name,
		Stats:     stats,
		PhotoURL:  p.PhotoURL,
		CreatedAt: p.CreatedAt,
	}

	if p.Season != nil {
		row.Season, err = sonic.Marshal(statsToDoc(*p.Season))
		if err != nil {
			return playerTableModel{}, crerr.Wrap(err, "marshal player season stats")
		}
	}
	if p.Attributes != nil {
		row.Attributes, err = sonic.Marshal(attributesDoc(*p.Attributes))
		if err != nil {
			return playerTableModel{}, crerr.Wrap(err, "marshal player attributes")
		}
	}

	return row, nil
}

func playerFromTableModel(row playerTableModel) (roster.Player, error) {
	p := roster.Player{
		ID:        row.ID,
		Name:      row.Name,
		PhotoURL:  row.PhotoURL,
		CreatedAt: row.CreatedAt,
	}

	var stats statsDoc
	if err := sonic.Unmarshal(row.Stats, &stats); err != nil {
		return roster.Player{}, crerr.Wrapf(err, "unmarshal stats for player %s", row.ID)
	}
	p.Stats = statsFromDoc(stats)

	if len(row.Season) > 0 {
		var season statsDoc
		if err := sonic.Unmarshal(row.Season, &season); err != nil {
			return roster.Player{}, crerr.Wrapf(err, "unmarshal season stats for player %s", row.ID)
		}
		s := statsFromDoc(season)
		p.Season = &s
	}
	if len(row.Attributes) > 0 {
		var attrs attributesDoc
		if err := sonic.Unmarshal(row.Attributes, &attrs); err != nil {
			return roster.Player{}, crerr.Wrapf(err, "unmarshal attributes for player %s", row.ID)
		}
		a := roster.Attributes(attrs)
		p.Attributes = &a
	}

	return p, nil
}

type matchTableModel struct {
	ID            string    `db:"id"`
	Date          time.Time `db:"date"`
	Lines         []byte    `db:"lines"`
	MOTM          string    `db:"motm"`
	BlueScore     int       `db:"blue_score"`
	WhiteScore    int       `db:"white_score"`
	OwnGoalsBlue  int       `db:"own_goals_blue"`
	OwnGoalsWhite int       `db:"own_goals_white"`
	CreatedAt     time.Time `db:"created_at"`
}

type lineDoc struct {
	Side         string  `json:"side"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Win          float64 `json:"win"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	CleanSheet   bool    `json:"clean_sheet"`
}

func matchToTableModel(m match.Match) (matchTableModel, error) {
	lines := make(map[string]lineDoc, len(m.Lines))
	for playerID, line := range m.Lines {
		lines[playerID] = lineDoc{
			Side:         string(line.Side),
			Goals:        line.Goals,
			Assists:      line.Assists,
			Win:          line.Win,
			GoalsFor:     line.GoalsFor,
			GoalsAgainst: line.GoalsAgainst,
			CleanSheet:   line.CleanSheet,
		}
	}
	encoded, err := sonic.Marshal(lines)
	if err != nil {
		return matchTableModel{}, crerr.Wrap(err, "marshal match lines")
	}

	return matchTableModel{
		ID:            m.ID,
		Date:          m.Date,
		Lines:         encoded,
		MOTM:          m.MOTM,
		BlueScore:     m.BlueScore,
		WhiteScore:    m.WhiteScore,
		OwnGoalsBlue:  m.OwnGoalsBlue,
		OwnGoalsWhite: m.OwnGoalsWhite,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func matchFromTableModel(row matchTableModel) (match.Match, error) {
	var lines map[string]lineDoc
	if err := sonic.Unmarshal(row.Lines, &lines); err != nil {
		return match.Match{}, crerr.Wrapf(err, "unmarshal lines for match %s", row.ID)
	}

	m := match.Match{
		ID:            row.ID,
		Date:          row.Date,
		Lines:         make(map[string]match.Line, len(lines)),
		MOTM:          row.MOTM,
		BlueScore:     row.BlueScore,
		WhiteScore:    row.WhiteScore,
		OwnGoalsBlue:  row.OwnGoalsBlue,
		OwnGoalsWhite: row.OwnGoalsWhite,
		CreatedAt:     row.CreatedAt,
	}
	for playerID, line := range lines {
		m.Lines[playerID] = match.Line{
			Side:         match.Side(line.Side),
			Goals:        line.Goals,
			Assists:      line.Assists,
			Win:          line.Win,
			GoalsFor:     line.GoalsFor,
			GoalsAgainst: line.GoalsAgainst,
			CleanSheet:   line.CleanSheet,
		}
	}

	return m, nil
}

type checkinTableModel struct {
	ID        string    `db:"id"`
	PlayerID  string    `db:"player_id"`
	Name      string    `db:"name"`
	CheckedAt time.Time `db:"checked_at"`
}

type configDoc struct {
	UnlockTime *time.Time `json:"unlock_time,omitempty"`
}

type publishedTeamsDoc struct {
	Blue        []string  `json:"blue"`
	White       []string  `json:"white"`
	PublishedAt time.Time `json:"published_at"`
}

func configToDoc(c settings.Config) configDoc {
	return configDoc{UnlockTime: c.UnlockTime}
}

func configFromDoc(d configDoc) settings.Config {
	return settings.Config{UnlockTime: d.UnlockTime}
}

func teamsToDoc(t settings.PublishedTeams) publishedTeamsDoc {
	return publishedTeamsDoc(t)
}

func teamsFromDoc(d publishedTeamsDoc) settings.PublishedTeams {
	return settings.PublishedTeams(d)
}
