package memory

import (
	"context"
	"sync"

	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

// SettingsRepository keeps group settings and the published team sheet in
// process memory. Sheet changes are pushed to subscribers, nil meaning the
// sheet was withdrawn.
type SettingsRepository struct {
	mu       sync.RWMutex
	cfg      settings.Config
	cfgSet   bool
	teams    settings.PublishedTeams
	teamsSet bool
	feed     broadcaster[*settings.PublishedTeams]
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) GetConfig(context.Context) (settings.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cfg, r.cfgSet, nil
}

func (r *SettingsRepository) SetConfig(_ context.Context, c settings.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = c
	r.cfgSet = true

	return nil
}

func (r *SettingsRepository) GetCurrentTeams(context.Context) (settings.PublishedTeams, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.teams, r.teamsSet, nil
}

func (r *SettingsRepository) SetCurrentTeams(_ context.Context, t settings.PublishedTeams) error {
	r.mu.Lock()
	r.teams = t
	r.teamsSet = true
	published := t
	r.mu.Unlock()

	r.feed.publish(&published)

	return nil
}

func (r *SettingsRepository) ClearCurrentTeams(context.Context) error {
	r.mu.Lock()
	r.teams = settings.PublishedTeams{}
	r.teamsSet = false
	r.mu.Unlock()

	r.feed.publish(nil)

	return nil
}

func (r *SettingsRepository) Subscribe(ctx context.Context) (<-chan *settings.PublishedTeams, func(), error) {
	ch, cancel := r.feed.subscribe(ctx)
	return ch, cancel, nil
}
