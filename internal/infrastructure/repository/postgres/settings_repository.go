package postgres

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

// Settings live in a small key/value table; one row per document.
const (
	settingsKeyConfig       = "config"
	settingsKeyCurrentTeams = "current_teams"
)

type SettingsRepository struct {
	db   *sqlx.DB
	feed *ChangeFeed
}

func NewSettingsRepository(db *sqlx.DB, feed *ChangeFeed) *SettingsRepository {
	return &SettingsRepository{db: db, feed: feed}
}

func (r *SettingsRepository) GetConfig(ctx context.Context) (settings.Config, bool, error) {
	raw, found, err := r.getValue(ctx, settingsKeyConfig)
	if err != nil || !found {
		return settings.Config{}, false, err
	}

	var doc configDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return settings.Config{}, false, crerr.Wrap(err, "unmarshal config")
	}

	return configFromDoc(doc), true, nil
}

func (r *SettingsRepository) SetConfig(ctx context.Context, c settings.Config) error {
	encoded, err := sonic.Marshal(configToDoc(c))
	if err != nil {
		return crerr.Wrap(err, "marshal config")
	}

	return r.setValue(ctx, settingsKeyConfig, encoded)
}

func (r *SettingsRepository) GetCurrentTeams(ctx context.Context) (settings.PublishedTeams, bool, error) {
	raw, found, err := r.getValue(ctx, settingsKeyCurrentTeams)
	if err != nil || !found {
		return settings.PublishedTeams{}, false, err
	}

	var doc publishedTeamsDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return settings.PublishedTeams{}, false, crerr.Wrap(err, "unmarshal published teams")
	}

	return teamsFromDoc(doc), true, nil
}

func (r *SettingsRepository) SetCurrentTeams(ctx context.Context, t settings.PublishedTeams) error {
	encoded, err := sonic.Marshal(teamsToDoc(t))
	if err != nil {
		return crerr.Wrap(err, "marshal published teams")
	}

	return r.setValue(ctx, settingsKeyCurrentTeams, encoded)
}

func (r *SettingsRepository) ClearCurrentTeams(ctx context.Context) error {
	return withNotify(ctx, r.db, topicSettings, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM app_settings WHERE key = $1", settingsKeyCurrentTeams); err != nil {
			return crerr.Wrap(err, "delete published teams")
		}
		return nil
	})
}

func (r *SettingsRepository) Subscribe(ctx context.Context) (<-chan *settings.PublishedTeams, func(), error) {
	return subscribeSnapshots(ctx, r.feed, topicSettings, func(ctx context.Context) (*settings.PublishedTeams, error) {
		teams, found, err := r.GetCurrentTeams(ctx)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		return &teams, nil
	})
}

func (r *SettingsRepository) getValue(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	if err := r.db.GetContext(ctx, &raw, "SELECT value FROM app_settings WHERE key = $1", key); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "select setting %s", key)
	}

	return raw, true, nil
}

func (r *SettingsRepository) setValue(ctx context.Context, key string, value []byte) error {
	return withNotify(ctx, r.db, topicSettings, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO app_settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			key, value, time.Now().UTC())
		if err != nil {
			return crerr.Wrapf(err, "upsert setting %s", key)
		}
		return nil
	})
}
