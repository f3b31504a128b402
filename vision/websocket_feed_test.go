package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/gesture-pong/protocol"
	"github.com/lixenwraith/gesture-pong/status"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestFeed(t *testing.T, mirror bool) (*WebSocketFeed, *httptest.Server, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	feed := NewWebSocketFeed(FeedConfig{
		StaleAfter: 250 * time.Millisecond,
		Mirror:     mirror,
		Selector:   protocol.Selector{Handedness: "any", MinConfidence: 0.5},
		TickHz:     60,
		Status:     status.NewRegistry(),
		Now:        clock.Now,
	})
	srv := httptest.NewServer(feed.Handler())
	t.Cleanup(srv.Close)
	return feed, srv, clock
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg, err := protocol.Encode(typ, payload)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func receive(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

// barrier relies on in-order processing: once the error reply arrives, everything sent before it was applied
func barrier(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	send(t, conn, "sync", protocol.Empty{})
	if env := receive(t, conn); env.T != protocol.MsgError {
		t.Fatalf("barrier reply = %q, want error", env.T)
	}
}

func frameAt(x, score float64) protocol.Landmarks {
	var h protocol.Hand
	h.Points[protocol.IndexTip] = protocol.Point3D{X: x, Y: 0.5}
	h.Score = score
	h.Handedness = "Right"
	return protocol.Landmarks{Seq: 1, Hands: []protocol.Hand{h}}
}

func TestHelloWelcome(t *testing.T) {
	_, srv, _ := newTestFeed(t, true)
	conn := dial(t, srv)

	send(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Name: "test"})
	env := receive(t, conn)
	if env.T != protocol.MsgWelcome {
		t.Fatalf("reply = %q, want welcome", env.T)
	}
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	if err != nil {
		t.Fatal(err)
	}
	if w.V != protocol.Version || w.TickHz != 60 || !w.Mirror {
		t.Errorf("welcome = %+v", w)
	}
}

func TestLandmarksUpdatePosition(t *testing.T) {
	feed, srv, _ := newTestFeed(t, false)
	conn := dial(t, srv)

	if _, ok, err := feed.PollHandPosition(); ok || err != nil {
		t.Fatalf("before any frame: ok=%v err=%v", ok, err)
	}

	send(t, conn, protocol.MsgLandmarks, frameAt(0.25, 0.9))
	barrier(t, conn)
	x, ok, err := feed.PollHandPosition()
	if err != nil || !ok || x != 0.25 {
		t.Fatalf("poll = (%v, %v, %v), want (0.25, true, nil)", x, ok, err)
	}

	send(t, conn, protocol.MsgNone, protocol.Empty{Seq: 2})
	barrier(t, conn)
	if _, ok, _ := feed.PollHandPosition(); ok {
		t.Error("hand still detected after none")
	}
}

func TestMirrorFlipsX(t *testing.T) {
	feed, srv, _ := newTestFeed(t, true)
	conn := dial(t, srv)

	send(t, conn, protocol.MsgLandmarks, frameAt(0.25, 0.9))
	barrier(t, conn)
	if x, ok, _ := feed.PollHandPosition(); !ok || x != 0.75 {
		t.Errorf("mirrored x = %v (ok=%v), want 0.75", x, ok)
	}
}

func TestOutOfRangeLandmarkClamped(t *testing.T) {
	feed, srv, _ := newTestFeed(t, false)
	conn := dial(t, srv)

	send(t, conn, protocol.MsgLandmarks, frameAt(1.3, 0.9))
	barrier(t, conn)
	if x, ok, _ := feed.PollHandPosition(); !ok || x != 1 {
		t.Errorf("x = %v (ok=%v), want 1", x, ok)
	}
}

func TestLowConfidenceReadsAsNoHand(t *testing.T) {
	feed, srv, _ := newTestFeed(t, false)
	conn := dial(t, srv)

	send(t, conn, protocol.MsgLandmarks, frameAt(0.4, 0.9))
	send(t, conn, protocol.MsgLandmarks, frameAt(0.6, 0.2))
	barrier(t, conn)
	if _, ok, _ := feed.PollHandPosition(); ok {
		t.Error("low-confidence hand was accepted")
	}
}

func TestStaleSampleExpires(t *testing.T) {
	feed, srv, clock := newTestFeed(t, false)
	conn := dial(t, srv)

	send(t, conn, protocol.MsgLandmarks, frameAt(0.5, 0.9))
	barrier(t, conn)

	clock.Advance(200 * time.Millisecond)
	if _, ok, _ := feed.PollHandPosition(); !ok {
		t.Fatal("fresh sample reported missing")
	}
	clock.Advance(100 * time.Millisecond)
	if _, ok, _ := feed.PollHandPosition(); ok {
		t.Error("stale sample still reported")
	}
}

func TestUnknownMessageRejected(t *testing.T) {
	_, srv, _ := newTestFeed(t, false)
	conn := dial(t, srv)

	send(t, conn, "gesture", protocol.Empty{})
	env := receive(t, conn)
	if env.T != protocol.MsgError {
		t.Fatalf("reply = %q, want error", env.T)
	}
	e, err := protocol.DecodePayload[protocol.Error](env)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.Reason, "gesture") {
		t.Errorf("reason = %q", e.Reason)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	if env := receive(t, conn); env.T != protocol.MsgError {
		t.Errorf("garbage reply = %q, want error", env.T)
	}
}

func TestHealthAndStatus(t *testing.T) {
	_, srv, _ := newTestFeed(t, false)
	conn := dial(t, srv)
	send(t, conn, protocol.MsgLandmarks, frameAt(0.5, 0.9))
	barrier(t, conn)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
	var snap map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if got := snap[status.KeyFeedMessages]; got != float64(2) {
		t.Errorf("%s = %v, want 2", status.KeyFeedMessages, got)
	}
	if got := snap[status.KeyFeedClients]; got != float64(1) {
		t.Errorf("%s = %v, want 1", status.KeyFeedClients, got)
	}
}

func TestStartStop(t *testing.T) {
	feed := NewWebSocketFeed(FeedConfig{Listen: "127.0.0.1:0", StaleAfter: time.Second})
	if err := feed.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if feed.Addr() == "" {
		t.Fatal("no bound address")
	}
	resp, err := http.Get("http://" + feed.Addr() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if err := feed.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := feed.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestListenFailureIsInputUnavailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	feed := NewWebSocketFeed(FeedConfig{Listen: ln.Addr().String()})
	if err := feed.Start(context.Background()); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("Start on busy port = %v, want ErrInputUnavailable", err)
	}
}
