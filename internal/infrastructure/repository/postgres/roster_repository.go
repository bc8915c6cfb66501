package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

type RosterRepository struct {
	db   *sqlx.DB
	feed *ChangeFeed
}

func NewRosterRepository(db *sqlx.DB, feed *ChangeFeed) *RosterRepository {
	return &RosterRepository{db: db, feed: feed}
}

const playerSelectColumns = "id, name, stats, season, attributes, photo_url, created_at"

func (r *RosterRepository) List(ctx context.Context) ([]roster.Player, error) {
	var rows []playerTableModel
	query := "SELECT " + playerSelectColumns + " FROM players ORDER BY created_at, id"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, crerr.Wrap(err, "select players")
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		p, err := playerFromTableModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *RosterRepository) GetByID(ctx context.Context, id string) (roster.Player, bool, error) {
	var row playerTableModel
	query := "SELECT " + playerSelectColumns + " FROM players WHERE id = $1"
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return roster.Player{}, false, nil
		}
		return roster.Player{}, false, crerr.Wrap(err, "select player")
	}

	p, err := playerFromTableModel(row)
	if err != nil {
		return roster.Player{}, false, err
	}

	return p, true, nil
}

func (r *RosterRepository) Create(ctx context.Context, p roster.Player) error {
	row, err := playerToTableModel(p)
	if err != nil {
		return err
	}

	return r.write(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO players (id, name, stats, season, attributes, photo_url, created_at)
			VALUES (:id, :name, :stats, :season, :attributes, :photo_url, :created_at)`, row)
		if err != nil {
			return crerr.Wrap(err, "insert player")
		}
		return nil
	})
}

func (r *RosterRepository) Update(ctx context.Context, p roster.Player) error {
	row, err := playerToTableModel(p)
	if err != nil {
		return err
	}

	return r.write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
			UPDATE players
			SET name = :name, stats = :stats, season = :season, attributes = :attributes, photo_url = :photo_url
			WHERE id = :id`, row)
		if err != nil {
			return crerr.Wrap(err, "update player")
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return crerr.Wrap(err, "update player rows affected")
		}
		if affected == 0 {
			return crerr.Newf("player %s does not exist", p.ID)
		}
		return nil
	})
}

func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	return r.write(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = $1", id); err != nil {
			return crerr.Wrap(err, "delete player")
		}
		return nil
	})
}

func (r *RosterRepository) UpsertBatch(ctx context.Context, players []roster.Player) error {
	rows := make([]playerTableModel, 0, len(players))
	for _, p := range players {
		row, err := playerToTableModel(p)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return r.write(ctx, func(tx *sqlx.Tx) error {
		for _, row := range rows {
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO players (id, name, stats, season, attributes, photo_url, created_at)
				VALUES (:id, :name, :stats, :season, :attributes, :photo_url, :created_at)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
				    stats = EXCLUDED.stats,
				    season = EXCLUDED.season,
				    attributes = EXCLUDED.attributes,
				    photo_url = EXCLUDED.photo_url`, row)
			if err != nil {
				return crerr.Wrapf(err, "upsert player %s", row.ID)
			}
		}
		return nil
	})
}

func (r *RosterRepository) DeleteAll(ctx context.Context) error {
	return r.write(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
			return crerr.Wrap(err, "delete players")
		}
		return nil
	})
}

func (r *RosterRepository) Subscribe(ctx context.Context) (<-chan []roster.Player, func(), error) {
	return subscribeSnapshots(ctx, r.feed, topicPlayers, r.List)
}

// write runs fn and a change notification in one transaction; the NOTIFY
// only fires if the write commits.
func (r *RosterRepository) write(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return withNotify(ctx, r.db, topicPlayers, fn)
}
