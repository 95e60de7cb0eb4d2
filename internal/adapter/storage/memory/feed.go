// Package memory holds an in-process ledger and change hub used for local
// runs and tests, and as the local fan-out behind the network feeds.
package memory

import (
	"context"
	"sync"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/rs/zerolog"
)

const subscriberBuffer = 64

// ChangeFeed is an in-process change hub. Each subscription is served by
// its own goroutine so a slow handler never blocks the publisher.
type ChangeFeed struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	log    zerolog.Logger
}

type subscriber struct {
	filter  domain.ChangeFilter
	handler ports.ChangeHandler
	events  chan domain.ChangeEvent
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// close reports whether this call released the subscriber.
func (s *subscriber) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	close(s.done)
	return true
}

func (s *subscriber) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// NewChangeFeed creates an empty hub.
func NewChangeFeed(log zerolog.Logger) *ChangeFeed {
	return &ChangeFeed{
		subs: make(map[uint64]*subscriber),
		log:  log,
	}
}

// Subscribe registers handler for events matching filter. The subscription
// is released by Unsubscribe or when ctx is done. Once Unsubscribe returns
// no further handler call begins, even for events already buffered; a call
// in progress runs to completion. Handlers may unsubscribe themselves.
func (f *ChangeFeed) Subscribe(ctx context.Context, filter domain.ChangeFilter, handler ports.ChangeHandler) (ports.Subscription, error) {
	sub := &subscriber{
		filter:  filter,
		handler: handler,
		events:  make(chan domain.ChangeEvent, subscriberBuffer),
		done:    make(chan struct{}),
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.subs[id] = sub
	f.mu.Unlock()

	release := func() {
		if sub.close() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		}
	}

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case <-ctx.Done():
				release()
				return
			case ev := <-sub.events:
				// select picks randomly when done and events are both ready
				if !sub.active() {
					return
				}
				sub.handler(ev)
			}
		}
	}()

	f.log.Debug().Str("filter", filter.String()).Msg("change subscription opened")
	return ports.SubscriptionFunc(release), nil
}

// Publish validates ev and fans it out to matching subscribers.
func (f *ChangeFeed) Publish(_ context.Context, ev domain.ChangeEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	f.Dispatch(ev)
	return nil
}

// Dispatch fans ev out without validation. Events for a full subscriber
// buffer are dropped.
func (f *ChangeFeed) Dispatch(ev domain.ChangeEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.subs {
		if !sub.filter.Matches(ev) {
			continue
		}
		select {
		case sub.events <- ev:
		case <-sub.done:
		default:
			f.log.Warn().
				Str("filter", sub.filter.String()).
				Str("table", ev.Table).
				Msg("change subscriber buffer full, event dropped")
		}
	}
}

// Len returns the number of live subscriptions.
func (f *ChangeFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
