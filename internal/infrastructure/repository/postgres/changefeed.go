package postgres

import (
	"context"
	"log/slog"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// All writes signal the same NOTIFY channel; the payload names the table
// that moved.
const notifyChannel = "fridayfut_changes"

const (
	topicPlayers  = "players"
	topicMatches  = "matches"
	topicCheckins = "checkins"
	topicSettings = "settings"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// ChangeFeed turns pg_notify events into per-topic ticks so repository
// subscriptions work across processes, not just within one.
type ChangeFeed struct {
	listener *pq.Listener
	logger   *slog.Logger

	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

func NewChangeFeed(dsn string, logger *slog.Logger) *ChangeFeed {
	if logger == nil {
		logger = slog.Default()
	}

	f := &ChangeFeed{
		logger: logger,
		subs:   make(map[string]map[int]chan struct{}),
		done:   make(chan struct{}),
	}
	f.listener = pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("change feed listener event", "event", int(event), "error", err)
		}
	})

	return f
}

func (f *ChangeFeed) Start() error {
	if err := f.listener.Listen(notifyChannel); err != nil {
		return crerr.Wrapf(err, "listen on %s", notifyChannel)
	}

	f.wg.Add(1)
	go f.run()

	return nil
}

func (f *ChangeFeed) Close() error {
	close(f.done)
	err := f.listener.Close()
	f.wg.Wait()

	return err
}

func (f *ChangeFeed) run() {
	defer f.wg.Done()

	for {
		select {
		case <-f.done:
			return
		case n := <-f.listener.Notify:
			if n == nil {
				// Reconnected; changes may have been missed on every table.
				f.tick(topicPlayers)
				f.tick(topicMatches)
				f.tick(topicCheckins)
				f.tick(topicSettings)
				continue
			}
			f.tick(n.Extra)
		case <-time.After(listenerPingInterval):
			if err := f.listener.Ping(); err != nil {
				f.logger.Warn("change feed ping failed", "error", err)
			}
		}
	}
}

func (f *ChangeFeed) tick(topic string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (f *ChangeFeed) subscribe(ctx context.Context, topic string) (<-chan struct{}, func()) {
	f.mu.Lock()
	if f.subs[topic] == nil {
		f.subs[topic] = make(map[int]chan struct{})
	}
	id := f.next
	f.next++
	ch := make(chan struct{}, 1)
	f.subs[topic][id] = ch
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[topic], id)
			f.mu.Unlock()
			close(ch)
		})
	}

	stop := context.AfterFunc(ctx, cancel)

	return ch, func() {
		stop()
		cancel()
	}
}

// subscribeSnapshots reloads the full state on every topic tick and pushes
// it to the subscriber, dropping stale pending snapshots.
func subscribeSnapshots[T any](
	ctx context.Context,
	feed *ChangeFeed,
	topic string,
	load func(context.Context) (T, error),
) (<-chan T, func(), error) {
	if feed == nil {
		return nil, nil, crerr.New("change feed is not configured")
	}

	ticks, cancelTicks := feed.subscribe(ctx, topic)
	subCtx, cancelCtx := context.WithCancel(ctx)
	out := make(chan T, 1)

	go func() {
		defer close(out)
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				snapshot, err := load(subCtx)
				if err != nil {
					if subCtx.Err() == nil {
						feed.logger.Warn("reload after change notification failed", "topic", topic, "error", err)
					}
					continue
				}
				select {
				case out <- snapshot:
					continue
				default:
				}
				select {
				case <-out:
				default:
				}
				select {
				case out <- snapshot:
				default:
				}
			}
		}
	}()

	cancel := func() {
		cancelTicks()
		cancelCtx()
	}

	return out, cancel, nil
}
