package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
)

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type stubRosterRepo struct {
	mu      sync.Mutex
	players []roster.Player
	subs    []chan []roster.Player
}

func (r *stubRosterRepo) List(context.Context) ([]roster.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]roster.Player{}, r.players...), nil
}

func (r *stubRosterRepo) GetByID(_ context.Context, playerID string) (roster.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return roster.Player{}, false, nil
}

func (r *stubRosterRepo) Create(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = append(r.players, p)
	return nil
}

func (r *stubRosterRepo) Update(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.players {
		if r.players[i].ID == p.ID {
			r.players[i] = p
			return nil
		}
	}
	return fmt.Errorf("player %s not stored", p.ID)
}

func (r *stubRosterRepo) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.players {
		if r.players[i].ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRosterRepo) UpsertBatch(_ context.Context, batch []roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range batch {
		replaced := false
		for i := range r.players {
			if r.players[i].ID == p.ID {
				r.players[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			r.players = append(r.players, p)
		}
	}
	return nil
}

func (r *stubRosterRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = nil
	return nil
}

func (r *stubRosterRepo) Subscribe(context.Context) (<-chan []roster.Player, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan []roster.Player, 4)
	r.subs = append(r.subs, ch)
	return ch, func() { close(ch) }, nil
}

func (r *stubRosterRepo) push() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		ch <- append([]roster.Player{}, r.players...)
	}
}

type stubMatchRepo struct {
	mu      sync.Mutex
	matches []match.Match
	subs    []chan []match.Match
}

func (r *stubMatchRepo) List(context.Context) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]match.Match{}, r.matches...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubMatchRepo) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == matchID {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *stubMatchRepo) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append(r.matches, m)
	return nil
}

func (r *stubMatchRepo) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == m.ID {
			r.matches[i] = m
			return nil
		}
	}
	return fmt.Errorf("match %s not stored", m.ID)
}

func (r *stubMatchRepo) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == matchID {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubMatchRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = nil
	return nil
}

func (r *stubMatchRepo) Subscribe(context.Context) (<-chan []match.Match, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan []match.Match, 4)
	r.subs = append(r.subs, ch)
	return ch, func() { close(ch) }, nil
}

type stubCheckinRepo struct {
	mu       sync.Mutex
	checkins []checkin.Checkin
	subs     []chan []checkin.Checkin
}

func (r *stubCheckinRepo) List(context.Context) ([]checkin.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]checkin.Checkin{}, r.checkins...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *stubCheckinRepo) Create(_ context.Context, c checkin.Checkin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkins = append(r.checkins, c)
	return nil
}

func (r *stubCheckinRepo) Delete(_ context.Context, checkinID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.checkins {
		if r.checkins[i].ID == checkinID {
			r.checkins = append(r.checkins[:i], r.checkins[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubCheckinRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkins = nil
	return nil
}

func (r *stubCheckinRepo) Subscribe(context.Context) (<-chan []checkin.Checkin, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan []checkin.Checkin, 4)
	r.subs = append(r.subs, ch)
	return ch, func() { close(ch) }, nil
}

type stubSettingsRepo struct {
	mu       sync.Mutex
	cfg      settings.Config
	cfgSet   bool
	teams    settings.PublishedTeams
	teamsSet bool
	subs     []chan *settings.PublishedTeams
}

func (r *stubSettingsRepo) GetConfig(context.Context) (settings.Config, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg, r.cfgSet, nil
}

func (r *stubSettingsRepo) SetConfig(_ context.Context, cfg settings.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	r.cfgSet = true
	return nil
}

func (r *stubSettingsRepo) GetCurrentTeams(context.Context) (settings.PublishedTeams, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.teams, r.teamsSet, nil
}

func (r *stubSettingsRepo) SetCurrentTeams(_ context.Context, teams settings.PublishedTeams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = teams
	r.teamsSet = true
	return nil
}

func (r *stubSettingsRepo) ClearCurrentTeams(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = settings.PublishedTeams{}
	r.teamsSet = false
	return nil
}

func (r *stubSettingsRepo) Subscribe(context.Context) (<-chan *settings.PublishedTeams, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan *settings.PublishedTeams, 4)
	r.subs = append(r.subs, ch)
	return ch, func() { close(ch) }, nil
}
