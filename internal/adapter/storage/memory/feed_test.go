package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"crossborder-remit/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (r *recorder) handle(ev domain.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func profileEvent(t *testing.T, id string) domain.ChangeEvent {
	t.Helper()
	ev, err := domain.NewChangeEvent(domain.TableProfiles, domain.ChangeUpdate, map[string]any{"id": id}, nil)
	require.NoError(t, err)
	return ev
}

func TestChangeFeed_DeliversMatchingEvents(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())
	rec := &recorder{}

	sub, err := feed.Subscribe(context.Background(),
		domain.ChangeFilter{Table: domain.TableProfiles, Event: domain.ChangeUpdate, Column: "id", Value: "u1"}, rec.handle)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, feed.Publish(context.Background(), profileEvent(t, "u1")))
	require.NoError(t, feed.Publish(context.Background(), profileEvent(t, "u2")))

	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestChangeFeed_UnsubscribeIsIdempotent(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())
	rec := &recorder{}

	sub, err := feed.Subscribe(context.Background(), domain.ChangeFilter{Table: domain.TableProfiles, Event: domain.ChangeAll}, rec.handle)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Len())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, feed.Len())

	require.NoError(t, feed.Publish(context.Background(), profileEvent(t, "u1")))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestChangeFeed_ContextCancelReleases(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	_, err := feed.Subscribe(ctx, domain.ChangeFilter{Table: domain.TableProfiles, Event: domain.ChangeAll}, func(domain.ChangeEvent) {})
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Len())

	cancel()
	assert.Eventually(t, func() bool { return feed.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestChangeFeed_PublishRejectsInvalid(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())

	err := feed.Publish(context.Background(), domain.ChangeEvent{Table: domain.TableProfiles, Kind: domain.ChangeUpdate})
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestChangeFeed_HandlerMayUnsubscribe(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())
	done := make(chan struct{})

	var sub interface{ Unsubscribe() }
	var mu sync.Mutex
	mu.Lock()
	s, err := feed.Subscribe(context.Background(), domain.ChangeFilter{Table: domain.TableProfiles, Event: domain.ChangeAll}, func(domain.ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		sub.Unsubscribe()
		close(done)
	})
	require.NoError(t, err)
	sub = s
	mu.Unlock()

	require.NoError(t, feed.Publish(context.Background(), profileEvent(t, "u1")))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
	assert.Eventually(t, func() bool { return feed.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestChangeFeed_NoHandlerStartsAfterUnsubscribe(t *testing.T) {
	feed := NewChangeFeed(zerolog.Nop())

	var (
		mu      sync.Mutex
		started int
	)
	firstCall := make(chan struct{})
	sub, err := feed.Subscribe(context.Background(), domain.ChangeFilter{Table: domain.TableProfiles, Event: domain.ChangeAll}, func(domain.ChangeEvent) {
		mu.Lock()
		started++
		n := started
		mu.Unlock()
		if n == 1 {
			close(firstCall)
		}
		time.Sleep(5 * time.Millisecond)
	})
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		require.NoError(t, feed.Publish(context.Background(), profileEvent(t, "u1")))
	}

	select {
	case <-firstCall:
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
	sub.Unsubscribe()

	mu.Lock()
	atUnsubscribe := started
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, atUnsubscribe, started, "handler started after Unsubscribe returned")
	assert.Equal(t, 0, feed.Len())
}
