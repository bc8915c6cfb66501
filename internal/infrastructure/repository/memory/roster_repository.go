package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fridayfut/fridayfut/internal/domain/roster"
)

// RosterRepository keeps the player pool in process memory, in insertion
// order. Every committed write pushes a fresh roster snapshot to subscribers.
type RosterRepository struct {
	mu      sync.RWMutex
	players map[string]roster.Player
	order   []string
	feed    broadcaster[[]roster.Player]
}

func NewRosterRepository(players []roster.Player) *RosterRepository {
	r := &RosterRepository{players: make(map[string]roster.Player, len(players))}
	for _, p := range players {
		if _, ok := r.players[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.players[p.ID] = p
	}

	return r
}

func (r *RosterRepository) List(context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked(), nil
}

func (r *RosterRepository) GetByID(_ context.Context, id string) (roster.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[id]

	return p, ok, nil
}

func (r *RosterRepository) Create(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	if _, exists := r.players[p.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *RosterRepository) Update(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	if _, exists := r.players[p.ID]; !exists {
		r.mu.Unlock()
		return fmt.Errorf("player %s does not exist", p.ID)
	}
	r.players[p.ID] = p
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *RosterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, exists := r.players[id]; !exists {
		r.mu.Unlock()
		return nil
	}
	delete(r.players, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *RosterRepository) UpsertBatch(_ context.Context, players []roster.Player) error {
	r.mu.Lock()
	for _, p := range players {
		if _, exists := r.players[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.players[p.ID] = p
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *RosterRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	r.players = make(map[string]roster.Player)
	r.order = nil
	r.mu.Unlock()

	r.feed.publish(nil)

	return nil
}

func (r *RosterRepository) Subscribe(ctx context.Context) (<-chan []roster.Player, func(), error) {
	ch, cancel := r.feed.subscribe(ctx)
	return ch, cancel, nil
}

func (r *RosterRepository) snapshotLocked() []roster.Player {
	out := make([]roster.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}

	return out
}
