package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
)

type CheckinRepository struct {
	db   *sqlx.DB
	feed *ChangeFeed
}

func NewCheckinRepository(db *sqlx.DB, feed *ChangeFeed) *CheckinRepository {
	return &CheckinRepository{db: db, feed: feed}
}

func (r *CheckinRepository) List(ctx context.Context) ([]checkin.Checkin, error) {
	var rows []checkinTableModel
	query := "SELECT id, player_id, name, checked_at FROM checkins ORDER BY checked_at, id"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, crerr.Wrap(err, "select check-ins")
	}

	out := make([]checkin.Checkin, 0, len(rows))
	for _, row := range rows {
		out = append(out, checkin.Checkin{
			ID:        row.ID,
			PlayerID:  row.PlayerID,
			Name:      row.Name,
			Timestamp: row.CheckedAt,
		})
	}

	return out, nil
}

func (r *CheckinRepository) Create(ctx context.Context, c checkin.Checkin) error {
	row := checkinTableModel{
		ID:        c.ID,
		PlayerID:  c.PlayerID,
		Name:      c.Name,
		CheckedAt: c.Timestamp,
	}

	return withNotify(ctx, r.db, topicCheckins, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO checkins (id, player_id, name, checked_at)
			VALUES (:id, :player_id, :name, :checked_at)`, row)
		if err != nil {
			return crerr.Wrap(err, "insert check-in")
		}
		return nil
	})
}

func (r *CheckinRepository) Delete(ctx context.Context, id string) error {
	return withNotify(ctx, r.db, topicCheckins, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM checkins WHERE id = $1", id); err != nil {
			return crerr.Wrap(err, "delete check-in")
		}
		return nil
	})
}

func (r *CheckinRepository) DeleteAll(ctx context.Context) error {
	return withNotify(ctx, r.db, topicCheckins, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM checkins"); err != nil {
			return crerr.Wrap(err, "delete check-ins")
		}
		return nil
	})
}

func (r *CheckinRepository) Subscribe(ctx context.Context) (<-chan []checkin.Checkin, func(), error) {
	return subscribeSnapshots(ctx, r.feed, topicCheckins, r.List)
}
