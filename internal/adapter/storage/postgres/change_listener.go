package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"crossborder-remit/internal/adapter/storage/memory"
	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	listenRetryDelay = time.Second
	unlistenTimeout  = 2 * time.Second
)

// NotificationSource is a connection that has issued LISTEN.
type NotificationSource interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Release()
}

// ListenFunc acquires a connection listening on channel.
type ListenFunc func(ctx context.Context, channel string) (NotificationSource, error)

// ChangeListener implements ports.ChangeFeed on top of LISTEN/NOTIFY.
// Notifications are produced by the ledger_notify() trigger.
type ChangeListener struct {
	listen  ListenFunc
	channel string
	hub     *memory.ChangeFeed
	log     zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewChangeListener creates a listener that holds one pool connection.
func NewChangeListener(pool *pgxpool.Pool, channel string, log zerolog.Logger) *ChangeListener {
	return NewChangeListenerWithSource(PoolListener(pool), channel, log)
}

// NewChangeListenerWithSource creates a listener over a custom connection source.
func NewChangeListenerWithSource(listen ListenFunc, channel string, log zerolog.Logger) *ChangeListener {
	return &ChangeListener{
		listen:  listen,
		channel: channel,
		hub:     memory.NewChangeFeed(log),
		log:     log,
	}
}

// PoolListener acquires a dedicated pool connection and issues LISTEN on it.
func PoolListener(pool *pgxpool.Pool) ListenFunc {
	return func(ctx context.Context, channel string) (NotificationSource, error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire listen conn: %w", err)
		}
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
			conn.Release()
			return nil, fmt.Errorf("listen %s: %w", channel, err)
		}
		return &poolConn{conn: pooled{conn}}, nil
	}
}

// listenConn is the part of a pooled connection the listener uses.
type listenConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
	Release()
}

type pooled struct {
	*pgxpool.Conn
}

func (p pooled) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	return p.Conn.Conn().WaitForNotification(ctx)
}

func (p pooled) Close(ctx context.Context) error {
	return p.Conn.Conn().Close(ctx)
}

type poolConn struct {
	conn listenConn
}

func (c *poolConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	return c.conn.WaitForNotification(ctx)
}

// Release drops every LISTEN before the connection goes back to the pool.
// A connection that cannot UNLISTEN is closed so the pool discards it.
func (c *poolConn) Release() {
	ctx, cancel := context.WithTimeout(context.Background(), unlistenTimeout)
	defer cancel()
	if _, err := c.conn.Exec(ctx, "UNLISTEN *"); err != nil {
		_ = c.conn.Close(ctx)
	}
	c.conn.Release()
}

// Start issues LISTEN and begins dispatching. It returns once the first
// connection is listening.
func (l *ChangeListener) Start(ctx context.Context) error {
	src, err := l.listen(ctx, l.channel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	go l.run(ctx, src)

	l.log.Info().Str("channel", l.channel).Msg("Ledger change listener started")
	return nil
}

func (l *ChangeListener) run(ctx context.Context, src NotificationSource) {
	defer l.wg.Done()
	defer func() {
		if src != nil {
			src.Release()
		}
	}()

	for {
		if src == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(listenRetryDelay):
			}
			var err error
			if src, err = l.listen(ctx, l.channel); err != nil {
				l.log.Warn().Err(err).Str("channel", l.channel).Msg("re-listen failed")
				src = nil
				continue
			}
		}

		n, err := src.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Str("channel", l.channel).Msg("notification wait failed, reconnecting")
			src.Release()
			src = nil
			continue
		}
		l.handle(n.Payload)
	}
}

func (l *ChangeListener) handle(payload string) {
	var ev domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		l.log.Warn().Err(err).Msg("malformed change notification")
		return
	}
	if err := ev.Validate(); err != nil {
		l.log.Warn().Err(err).Str("table", ev.Table).Msg("invalid change notification")
		return
	}
	l.hub.Dispatch(ev)
}

// Subscribe registers a handler on the local fan-out.
func (l *ChangeListener) Subscribe(ctx context.Context, filter domain.ChangeFilter, handler ports.ChangeHandler) (ports.Subscription, error) {
	return l.hub.Subscribe(ctx, filter, handler)
}

// Close stops listening and releases the connection.
func (l *ChangeListener) Close() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}
