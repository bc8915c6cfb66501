package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
)

// CheckinRepository keeps the session queue in process memory, ordered by
// check-in time. Position in the ordered queue is the only state; there is
// no stored starting or waitlist flag.
type CheckinRepository struct {
	mu       sync.RWMutex
	checkins map[string]checkin.Checkin
	feed     broadcaster[[]checkin.Checkin]
}

func NewCheckinRepository() *CheckinRepository {
	return &CheckinRepository{checkins: make(map[string]checkin.Checkin)}
}

func (r *CheckinRepository) List(context.Context) ([]checkin.Checkin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshotLocked(), nil
}

func (r *CheckinRepository) Create(_ context.Context, c checkin.Checkin) error {
	r.mu.Lock()
	if _, exists := r.checkins[c.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("check-in %s already exists", c.ID)
	}
	r.checkins[c.ID] = c
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *CheckinRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, exists := r.checkins[id]; !exists {
		r.mu.Unlock()
		return nil
	}
	delete(r.checkins, id)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.feed.publish(snapshot)

	return nil
}

func (r *CheckinRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	r.checkins = make(map[string]checkin.Checkin)
	r.mu.Unlock()

	r.feed.publish(nil)

	return nil
}

func (r *CheckinRepository) Subscribe(ctx context.Context) (<-chan []checkin.Checkin, func(), error) {
	ch, cancel := r.feed.subscribe(ctx)
	return ch, cancel, nil
}

func (r *CheckinRepository) snapshotLocked() []checkin.Checkin {
	out := make([]checkin.Checkin, 0, len(r.checkins))
	for _, c := range r.checkins {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
