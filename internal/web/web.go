// Package web is the browser front-end: it serves a canvas page and plays one
// Game per WebSocket connection.
package web

import (
	_ "embed"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
)

//go:embed index.html
var indexPage []byte

// Connection timing.
const (
	readLimit    = 4 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Options configures the handler.
type Options struct {
	// Game is the template for every connection's game. Rand is ignored;
	// each connection gets its own source.
	Game      loop.Options
	Logger    *log.Logger
	FrameTime time.Duration // Zero selects the terminal refresh rate
}

// Handler serves the page at / and the game at /ws.
type Handler struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   *mux.Router
}

// NewHandler creates the browser front-end.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = config.ClientTargetFrameTime
	}

	h := &Handler{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		router: mux.NewRouter(),
	}
	h.router.HandleFunc("/", h.serveIndex).Methods(http.MethodGet)
	h.router.HandleFunc("/ws", h.serveWS).Methods(http.MethodGet)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := h.logger.With("session", id)
	logger.Info("browser session started", "remote", r.RemoteAddr)
	defer logger.Info("browser session ended")

	opts := h.opts.Game
	opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	opts.Logger = logger
	p := newPlayer(loop.NewGame(opts))

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reads happen on their own goroutine; the game and all writes stay on
	// this one.
	msgs := make(chan clientMessage, 64)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			var m clientMessage
			if err := conn.ReadJSON(&m); err != nil {
				readErr <- err
				return
			}
			select {
			case msgs <- m:
			case <-done:
				return
			}
		}
	}()

	frames := time.NewTicker(h.opts.FrameTime)
	defer frames.Stop()
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case err := <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read ended", "err", err)
			}
			return
		case m := <-msgs:
			p.handle(m)
		case now := <-frames.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(p.frame(now)); err != nil {
				logger.Debug("websocket write failed", "err", err)
				return
			}
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// player couples one game with the browser's key state.
type player struct {
	game *loop.Game
	keys *input.Keys
}

func newPlayer(g *loop.Game) *player {
	return &player{game: g, keys: input.NewKeys()}
}

func (p *player) handle(m clientMessage) {
	switch m.Type {
	case "key":
		if a, ok := p.keys.Apply(m.Code, m.Down); ok {
			p.game.Dispatch(a)
		}
	case "blur":
		for _, a := range p.keys.Release() {
			p.game.Dispatch(a)
		}
	case "resize":
		p.game.Resize(object.Screen{Width: m.Width, Height: m.Height})
	}
	p.game.SetDirection(p.keys.Direction())
}

func (p *player) frame(now time.Time) frameMessage {
	p.game.Tick(now)
	return newFrameMessage(p.game.Snapshot(now))
}
