package ports

import (
	"context"

	"crossborder-remit/internal/core/domain"
)

// ChangeHandler receives a matching row change on the feed's dispatch goroutine.
type ChangeHandler func(ev domain.ChangeEvent)

// ChangeFeed delivers row-level change events filtered by table, kind and column.
type ChangeFeed interface {
	Subscribe(ctx context.Context, filter domain.ChangeFilter, handler ChangeHandler) (Subscription, error)
}

// Subscription is a registered change listener. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// ChangePublisher pushes a change event into a feed transport.
type ChangePublisher interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Unsubscribe() { f() }
