package postgres

import (
	"context"
	"database/sql"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// withNotify runs fn and a pg_notify for the topic in one transaction, so
// subscribers only hear about committed writes.
func withNotify(ctx context.Context, db *sqlx.DB, topic string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", notifyChannel, topic); err != nil {
		return crerr.Wrap(err, "notify change")
	}
	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit transaction")
	}

	return nil
}
