package service

import (
	"sync"

	"crossborder-remit/internal/core/ports"
)

// subscriptionSet tracks the change subscriptions a workflow opened so they
// can all be released when the workflow closes.
type subscriptionSet struct {
	mu     sync.Mutex
	next   uint64
	subs   map[uint64]ports.Subscription
	closed bool
}

// track wraps subs into one handle. Releasing the handle removes it from
// the set; closing the set releases every tracked handle.
func (s *subscriptionSet) track(subs ...ports.Subscription) ports.Subscription {
	var once sync.Once
	release := func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return ports.SubscriptionFunc(func() {})
	}
	if s.subs == nil {
		s.subs = make(map[uint64]ports.Subscription)
	}
	s.next++
	id := s.next
	handle := ports.SubscriptionFunc(func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			release()
		})
	})
	s.subs[id] = handle
	s.mu.Unlock()

	return handle
}

func (s *subscriptionSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *subscriptionSet) closeAll() {
	s.mu.Lock()
	s.closed = true
	handles := make([]ports.Subscription, 0, len(s.subs))
	for _, h := range s.subs {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Unsubscribe()
	}
}
