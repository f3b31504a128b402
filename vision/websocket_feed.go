package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/gesture-pong/protocol"
	"github.com/lixenwraith/gesture-pong/status"
)

// Connection timing
const (
	readLimit    = 1 << 20
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// FeedConfig configures a WebSocketFeed
type FeedConfig struct {
	Listen     string
	StaleAfter time.Duration
	Mirror     bool // report 1-x, matching a flipped camera preview
	Selector   protocol.Selector
	TickHz     int
	Status     *status.Registry
	Now        func() time.Time // nil = time.Now
}

// WebSocketFeed receives landmark frames from a vision sidecar and exposes the
// latest steering position to the tick loop
type WebSocketFeed struct {
	cfg      FeedConfig
	upgrader websocket.Upgrader
	latest   slot
	router   chi.Router

	server   *http.Server
	listener net.Listener

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	messages *atomic.Int64
	clients  *atomic.Int64
	stopped  atomic.Bool
}

// NewWebSocketFeed builds the feed and its routes; Start binds the listener
func NewWebSocketFeed(cfg FeedConfig) *WebSocketFeed {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	f := &WebSocketFeed{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			// Sidecars run locally, often from a file:// page
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns:    make(map[*websocket.Conn]struct{}),
		messages: cfg.Status.Ints.Get(status.KeyFeedMessages),
		clients:  cfg.Status.Ints.Get(status.KeyFeedClients),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Get("/ws", f.handleWS)
	r.Get("/status", f.handleStatus)
	f.router = r
	return f
}

// Handler exposes the routes, for embedding or httptest
func (f *WebSocketFeed) Handler() http.Handler { return f.router }

// Name implements service.Service
func (f *WebSocketFeed) Name() string { return "vision" }

// Dependencies implements service.Service
func (f *WebSocketFeed) Dependencies() []string { return nil }

// Start binds the listener and serves in the background
// A bind failure or a later serve failure is reported as ErrInputUnavailable
func (f *WebSocketFeed) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", f.cfg.Listen)
	if err != nil {
		return fmt.Errorf("%w: listen %s: %v", ErrInputUnavailable, f.cfg.Listen, err)
	}
	f.listener = ln
	f.server = &http.Server{
		Handler:           f.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		err := f.server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("vision feed: serve: %v", err)
			f.latest.fail(fmt.Errorf("%w: serve: %v", ErrInputUnavailable, err))
		}
	}()
	log.Printf("vision feed listening on %s", ln.Addr())
	return nil
}

// Stop shuts the server down and closes sidecar connections
func (f *WebSocketFeed) Stop() error {
	if !f.stopped.CompareAndSwap(false, true) || f.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := f.server.Shutdown(ctx)

	// Hijacked connections are not tracked by Shutdown
	f.mu.Lock()
	for c := range f.conns {
		c.Close()
	}
	f.mu.Unlock()
	return err
}

// Addr is the bound address, empty before Start
func (f *WebSocketFeed) Addr() string {
	if f.listener == nil {
		return ""
	}
	return f.listener.Addr().String()
}

// PollHandPosition implements engine.HandSource
func (f *WebSocketFeed) PollHandPosition() (float64, bool, error) {
	return f.latest.read(f.cfg.Now(), f.cfg.StaleAfter)
}

func (f *WebSocketFeed) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.cfg.Status.Snapshot())
}

func (f *WebSocketFeed) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("vision feed: upgrade: %v", err)
		return
	}
	f.track(conn, true)
	defer f.track(conn, false)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	var writeMu sync.Mutex
	send := func(t string, payload any) error {
		msg, err := protocol.Encode(t, payload)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, msg)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				writeMu.Unlock()
				if err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("vision feed: read: %v", err)
			}
			return
		}
		f.messages.Add(1)

		if reason := f.handleMessage(msg, send); reason != "" {
			_ = send(protocol.MsgError, protocol.Error{Reason: reason})
		}
	}
}

// handleMessage applies one sidecar message and returns a rejection reason, if any
func (f *WebSocketFeed) handleMessage(msg []byte, send func(string, any) error) string {
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return err.Error()
	}

	switch env.T {
	case protocol.MsgHello:
		hello, err := protocol.DecodePayload[protocol.Hello](env)
		if err != nil {
			return err.Error()
		}
		log.Printf("vision feed: sidecar %q v%d connected", hello.Name, hello.V)
		_ = send(protocol.MsgWelcome, protocol.Welcome{V: protocol.Version, TickHz: f.cfg.TickHz, Mirror: f.cfg.Mirror})

	case protocol.MsgLandmarks:
		frame, err := protocol.DecodePayload[protocol.Landmarks](env)
		if err != nil {
			return err.Error()
		}
		hand, err := f.cfg.Selector.Select(frame)
		if err != nil {
			f.latest.store(0, false, f.cfg.Now())
			return ""
		}
		x := clampUnit(hand.PointerX())
		if f.cfg.Mirror {
			x = 1 - x
		}
		f.latest.store(x, true, f.cfg.Now())

	case protocol.MsgNone:
		f.latest.store(0, false, f.cfg.Now())

	default:
		return fmt.Sprintf("unknown message type %q", env.T)
	}
	return ""
}

func (f *WebSocketFeed) track(c *websocket.Conn, add bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if add {
		f.conns[c] = struct{}{}
		f.clients.Add(1)
		return
	}
	if _, ok := f.conns[c]; ok {
		delete(f.conns, c)
		f.clients.Add(-1)
		c.Close()
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
