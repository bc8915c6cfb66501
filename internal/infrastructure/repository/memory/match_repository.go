package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fridayfut/fridayfut/internal/domain/match"
)

// MatchRepository keeps the match log in process memory, listed newest
// first.
type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	feed    broadcaster[[]match.Match]
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{matches: make(map[string]match.Match, len(matches))}
	for _, m := range matches {
		r.matches[m.ID] = m
	}

	return r
}

func (r *MatchRepository) List(context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked(), nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[id]

	return m, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	if _, exists := r.matches[m.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = m
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	if _, exists := r.matches[m.ID]; !exists {
		r.mu.Unlock()
		return fmt.Errorf("match %s does not exist", m.ID)
	}
	r.matches[m.ID] = m
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, exists := r.matches[id]; !exists {
		r.mu.Unlock()
		return nil
	}
	delete(r.matches, id)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *MatchRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	r.matches = make(map[string]match.Match)
	r.mu.Unlock()

	r.feed.publish(nil)

	return nil
}

func (r *MatchRepository) Subscribe(ctx context.Context) (<-chan []match.Match, func(), error) {
	ch, cancel := r.feed.subscribe(ctx)
	return ch, cancel, nil
}

func (r *MatchRepository) snapshotLocked() []match.Match {
	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
