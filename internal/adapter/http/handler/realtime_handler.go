package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"crossborder-remit/internal/adapter/http/middleware"
	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Realtime message types.
const (
	MessageHistory = "history"
	MessageProfile = "profile"
	MessageRate    = "rate"
	MessageWallet  = "wallet"
	MessageError   = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Message is one push frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RealtimeHandler pushes history, profile, rate and wallet changes over a
// websocket. Subscriptions live exactly as long as the socket.
type RealtimeHandler struct {
	reporting ports.ReportingService
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

// NewRealtimeHandler creates a new RealtimeHandler. An empty or "*" origin
// list accepts every origin.
func NewRealtimeHandler(reporting ports.ReportingService, allowedOrigins []string, log zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		reporting: reporting,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With().Str("component", "realtime").Logger(),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Serve handles GET /api/v1/realtime.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	ws, ok := currentWorkspace(c, "continue")
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader already wrote the HTTP error.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	s := &socket{
		conn:   conn,
		out:    make(chan Message, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
		log:    h.log.With().Str("user_id", userID.String()).Logger(),
	}
	defer s.close()

	if err := h.subscribe(s, ws); err != nil {
		s.log.Warn().Err(err).Msg("realtime subscribe failed")
		// No writer is running yet.
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(Message{Type: MessageError, Data: err.Error()})
		return
	}
	h.snapshot(s, ws)

	s.log.Debug().Msg("realtime connected")
	s.wg.Add(1)
	go s.writePump()
	s.readPump()
	s.log.Debug().Msg("realtime disconnected")
}

func (h *RealtimeHandler) subscribe(s *socket, ws ports.Workspace) error {
	history, err := ws.Transfers().WatchHistory(s.ctx, func(txs []domain.Transaction) {
		s.send(Message{Type: MessageHistory, Data: txs})
	})
	if err != nil {
		return err
	}
	s.track(history)

	profile, err := ws.KYC().Watch(s.ctx, func(p *domain.Profile) {
		s.send(Message{Type: MessageProfile, Data: p})
	})
	if err != nil {
		return err
	}
	s.track(profile)

	rate, err := ws.Transfers().WatchRate(s.ctx, func(r *domain.ExchangeRate) {
		s.send(Message{Type: MessageRate, Data: r})
	})
	if err != nil {
		return err
	}
	s.track(rate)

	s.track(ws.Wallet().OnChange(func(st ports.WalletState) {
		s.send(Message{Type: MessageWallet, Data: st})
	}))
	return nil
}

// snapshot queues the current values so the client renders before the first change.
func (h *RealtimeHandler) snapshot(s *socket, ws ports.Workspace) {
	if txs, err := h.reporting.ListRecent(s.ctx, ws.Session().Identity()); err != nil {
		s.log.Warn().Err(err).Msg("failed to load history snapshot")
	} else {
		s.send(Message{Type: MessageHistory, Data: txs})
	}
	s.send(Message{Type: MessageProfile, Data: ws.Session().Profile()})
	if rate := ws.Transfers().State().Rate; rate != nil {
		s.send(Message{Type: MessageRate, Data: rate})
	}
	s.send(Message{Type: MessageWallet, Data: ws.Wallet().State()})
}

type socket struct {
	conn   *websocket.Conn
	out    chan Message
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	mu   sync.Mutex
	subs []ports.Subscription
	wg   sync.WaitGroup
}

func (s *socket) track(sub ports.Subscription) {
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
}

// send never blocks a feed handler. A full buffer drops the frame.
func (s *socket) send(m Message) {
	select {
	case <-s.ctx.Done():
	case s.out <- m:
	default:
		s.log.Warn().Str("type", m.Type).Msg("realtime send buffer full, message dropped")
	}
}

func (s *socket) writePump() {
	defer s.wg.Done()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case m := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(m); err != nil {
				s.abort()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.abort()
				return
			}
		}
	}
}

// abort unblocks readPump after a failed write.
func (s *socket) abort() {
	s.cancel()
	_ = s.conn.Close()
}

// readPump discards client frames and returns when the peer goes away.
func (s *socket) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *socket) close() {
	s.cancel()

	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}

	s.wg.Wait()
	_ = s.conn.Close()
}
