package memory

import (
	"context"
	"sync"
)

// broadcaster fans store snapshots out to subscribers. Sends never block: a
// slow subscriber loses intermediate snapshots, not the latest one.
type broadcaster[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]chan T
}

func (b *broadcaster[T]) subscribe(ctx context.Context) (<-chan T, func()) {
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]chan T)
	}
	id := b.next
	b.next++
	ch := make(chan T, 1)
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			// No publisher can still hold ch here.
			close(ch)
		})
	}

	stop := context.AfterFunc(ctx, cancel)

	return ch, func() {
		stop()
		cancel()
	}
}

func (b *broadcaster[T]) publish(snapshot T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- snapshot:
			continue
		default:
		}
		// Replace the pending snapshot with the fresher one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
