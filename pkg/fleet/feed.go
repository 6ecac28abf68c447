package fleet

import (
	"sync"

	"go.uber.org/zap"
	"litenby.com/sound-locator-fleet/pkg/common"
)

const (
	EventNodeUpdate    = "node:update"
	EventStationUpdate = "station:update"
)

// Event is one change-feed entry. Data always carries the full current
// record, never a delta, so applying a duplicate or stale event is
// idempotent for subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Feed fans events out to subscribers. Delivery is at-most-once: a
// subscriber whose buffer is full has that event dropped. There is no
// replay; subscribers fetch the snapshot first, then subscribe.
type Feed struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscriber
	nextID uint64
}

type Subscriber struct {
	C chan Event

	id   uint64
	feed *Feed
	once sync.Once
}

func newFeed() *Feed {
	return &Feed{subs: make(map[uint64]*Subscriber)}
}

func (fd *Feed) Subscribe(buffer int) *Subscriber {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	sub := &Subscriber{
		C:    make(chan Event, buffer),
		id:   fd.nextID,
		feed: fd,
	}
	fd.subs[sub.id] = sub
	fd.nextID++
	return sub
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		defer s.feed.mu.Unlock()
		delete(s.feed.subs, s.id)
		close(s.C)
	})
}

func (fd *Feed) emit(ev Event) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryFeed),
	)

	fd.mu.Lock()
	defer fd.mu.Unlock()

	for _, sub := range fd.subs {
		select {
		case sub.C <- ev:
		default:
			logger.Warn("Subscriber buffer full, dropping event", zap.String("type", ev.Type))
		}
	}
}

func (fd *Feed) SubscriberCount() int {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return len(fd.subs)
}
