package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"crossborder-remit/internal/adapter/storage/memory"
	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ChangeFeed carries ledger change events over Redis pub/sub. Each table is
// published on prefix+table. Received events fan out through a local hub.
type ChangeFeed struct {
	client *goredis.Client
	prefix string
	hub    *memory.ChangeFeed
	log    zerolog.Logger

	mu     sync.Mutex
	pubsub *goredis.PubSub
	done   chan struct{}
}

// NewChangeFeed creates a Redis change feed. Call Start before subscribers
// can receive anything.
func NewChangeFeed(client *goredis.Client, prefix string, log zerolog.Logger) *ChangeFeed {
	l := log.With().Str("component", "redis_change_feed").Logger()
	return &ChangeFeed{
		client: client,
		prefix: prefix,
		hub:    memory.NewChangeFeed(l),
		log:    l,
	}
}

// Start pattern-subscribes to every table channel and begins relaying.
func (f *ChangeFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pubsub != nil {
		return nil
	}

	ps := f.client.PSubscribe(ctx, f.prefix+"*")
	// Wait for confirmation that subscription is created
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("redis change feed subscribe: %w", err)
	}

	f.pubsub = ps
	f.done = make(chan struct{})
	go f.relay(ps.Channel(), f.done)

	f.log.Info().Str("pattern", f.prefix+"*").Msg("Redis change feed started")
	return nil
}

func (f *ChangeFeed) relay(ch <-chan *goredis.Message, done chan struct{}) {
	defer close(done)
	for msg := range ch {
		var ev domain.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			f.log.Warn().Err(err).Str("channel", msg.Channel).Msg("undecodable change event")
			continue
		}
		if ev.Table == "" {
			ev.Table = strings.TrimPrefix(msg.Channel, f.prefix)
		}
		if err := ev.Validate(); err != nil {
			f.log.Warn().Err(err).Str("channel", msg.Channel).Msg("invalid change event")
			continue
		}
		f.hub.Dispatch(ev)
	}
}

// Publish implements ports.ChangePublisher.
func (f *ChangeFeed) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := f.client.Publish(ctx, f.prefix+ev.Table, payload).Err(); err != nil {
		return fmt.Errorf("redis change feed publish: %w", err)
	}
	return nil
}

// Subscribe implements ports.ChangeFeed.
func (f *ChangeFeed) Subscribe(ctx context.Context, filter domain.ChangeFilter, handler ports.ChangeHandler) (ports.Subscription, error) {
	return f.hub.Subscribe(ctx, filter, handler)
}

// Close stops relaying and waits for the relay goroutine to exit.
func (f *ChangeFeed) Close() error {
	f.mu.Lock()
	ps, done := f.pubsub, f.done
	f.pubsub = nil
	f.mu.Unlock()

	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}
