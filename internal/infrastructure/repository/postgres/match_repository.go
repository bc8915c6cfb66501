package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fridayfut/fridayfut/internal/domain/match"
)

type MatchRepository struct {
	db   *sqlx.DB
	feed *ChangeFeed
}

func NewMatchRepository(db *sqlx.DB, feed *ChangeFeed) *MatchRepository {
	return &MatchRepository{db: db, feed: feed}
}

const matchSelectColumns = "id, date, lines, motm, blue_score, white_score, own_goals_blue, own_goals_white, created_at"

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchTableModel
	query := "SELECT " + matchSelectColumns + " FROM matches ORDER BY date DESC, id"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, crerr.Wrap(err, "select matches")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := matchFromTableModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	var row matchTableModel
	query := "SELECT " + matchSelectColumns + " FROM matches WHERE id = $1"
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrap(err, "select match")
	}

	m, err := matchFromTableModel(row)
	if err != nil {
		return match.Match{}, false, err
	}

	return m, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	row, err := matchToTableModel(m)
	if err != nil {
		return err
	}

	return withNotify(ctx, r.db, topicMatches, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO matches (id, date, lines, motm, blue_score, white_score, own_goals_blue, own_goals_white, created_at)
			VALUES (:id, :date, :lines, :motm, :blue_score, :white_score, :own_goals_blue, :own_goals_white, :created_at)`, row)
		if err != nil {
			return crerr.Wrap(err, "insert match")
		}
		return nil
	})
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	row, err := matchToTableModel(m)
	if err != nil {
		return err
	}

	return withNotify(ctx, r.db, topicMatches, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
			UPDATE matches
			SET date = :date, lines = :lines, motm = :motm,
			    blue_score = :blue_score, white_score = :white_score,
			    own_goals_blue = :own_goals_blue, own_goals_white = :own_goals_white
			WHERE id = :id`, row)
		if err != nil {
			return crerr.Wrap(err, "update match")
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return crerr.Wrap(err, "update match rows affected")
		}
		if affected == 0 {
			return crerr.Newf("match %s does not exist", m.ID)
		}
		return nil
	})
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	return withNotify(ctx, r.db, topicMatches, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE id = $1", id); err != nil {
			return crerr.Wrap(err, "delete match")
		}
		return nil
	})
}

func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	return withNotify(ctx, r.db, topicMatches, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM matches"); err != nil {
			return crerr.Wrap(err, "delete matches")
		}
		return nil
	})
}

func (r *MatchRepository) Subscribe(ctx context.Context) (<-chan []match.Match, func(), error) {
	return subscribeSnapshots(ctx, r.feed, topicMatches, r.List)
}
