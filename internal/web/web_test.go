package web

import (
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/loop/config"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestPlayer() *player {
	return newPlayer(loop.NewGame(loop.Options{
		Rand:   rand.New(rand.NewSource(1)),
		Logger: log.New(io.Discard),
	}))
}

func TestIndexServed(t *testing.T) {
	h := NewHandler(Options{Logger: log.New(io.Discard)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<canvas") {
		t.Fatal("page has no canvas")
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := NewHandler(Options{Logger: log.New(io.Discard)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d", rec.Code)
	}
}

func TestKeyMessagesDriveSession(t *testing.T) {
	p := newTestPlayer()

	p.handle(clientMessage{Type: "key", Code: "Space", Down: true})
	f := p.frame(t0)
	if f.Phase != "playing" || f.Lives != 3 || f.Player == nil {
		t.Fatalf("frame after start = %+v", f)
	}

	p.handle(clientMessage{Type: "key", Code: "Space", Down: false})
	p.handle(clientMessage{Type: "key", Code: "Space", Down: true})
	if !p.game.Session.State().IsShooting {
		t.Fatal("second press did not start shooting")
	}

	p.handle(clientMessage{Type: "blur"})
	if p.game.Session.State().IsShooting {
		t.Fatal("blur left the fire key held")
	}

	p.handle(clientMessage{Type: "key", Code: "Escape", Down: true})
	if f := p.frame(t0.Add(16 * time.Millisecond)); f.Phase != "paused" {
		t.Fatalf("phase = %s, want paused", f.Phase)
	}
}

func TestResizeMessage(t *testing.T) {
	p := newTestPlayer()
	p.handle(clientMessage{Type: "resize", Width: 300, Height: 600})
	f := p.frame(t0)
	if f.Width != 300 || f.Height != 600 {
		t.Fatalf("size = %vx%v", f.Width, f.Height)
	}

	p.handle(clientMessage{Type: "resize", Width: 0, Height: 600})
	if f := p.frame(t0); f.Width != 300 {
		t.Fatal("invalid size applied")
	}

	p.handle(clientMessage{Type: "resize", Width: 3e5, Height: 3e5})
	if f := p.frame(t0); f.Width != config.MaxPlayfieldWidth || f.Height != config.MaxPlayfieldHeight {
		t.Fatalf("oversized viewport = %vx%v", f.Width, f.Height)
	}
}

func TestWebSocketSession(t *testing.T) {
	srv := httptest.NewServer(NewHandler(Options{
		Logger:    log.New(io.Discard),
		FrameTime: 5 * time.Millisecond,
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(clientMessage{Type: "key", Code: "Space", Down: true}); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var f frameMessage
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("no playing frame received: %v", err)
		}
		if f.Type != "frame" {
			t.Fatalf("type = %q", f.Type)
		}
		if f.Phase == "playing" {
			return
		}
	}
}
