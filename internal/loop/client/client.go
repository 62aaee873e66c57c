// Package client is the terminal front-end: it reads keys, drives one Game
// and draws its snapshots.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/loop/config"
)

const hudRows = 4

// Client handles rendering and input for a single terminal.
type Client struct {
	game         *loop.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	tracker      input.Tracker
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	idleWarn       time.Duration
	idleDisconnect time.Duration
	noIdleLimit    bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Game         loop.Options
	Logger       *log.Logger

	// Idle limits; zero selects the defaults. Only enforced outside of play.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration
	NoIdleLimit    bool // Never warn or drop, e.g. for a local terminal
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Game.Logger == nil {
		opts.Game.Logger = opts.Logger
	}
	if opts.IdleWarn <= 0 {
		opts.IdleWarn = config.InactivityWarn
	}
	if opts.IdleDisconnect <= 0 {
		opts.IdleDisconnect = config.InactivityDisconnect
	}

	game := loop.NewGame(opts.Game)
	screen := game.World.Screen
	canvas := draw.NewScaledCanvas(0, 0, screen.Width, screen.Height)

	return &Client{
		game:           game,
		state:          NewClientState(time.Now()),
		canvas:         canvas,
		chunkWriter:    draw.NewChunkWriter(w, 0, 0),
		writer:         w,
		inputStream:    input.StartStream(r),
		termSizeFunc:   opts.TermSizeFunc,
		logger:         opts.Logger,
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
		noIdleLimit:    opts.NoIdleLimit,
	}
}

// Game returns the simulation driven by this client.
func (c *Client) Game() *loop.Game {
	return c.game
}

// Run drives the client at the display refresh rate until the user quits,
// the input closes or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
		case now := <-ticker.C:
			if err := c.frame(now, input.ReadInput(c.inputStream)); err != nil {
				return err
			}
			if c.inputStream.Closed() {
				c.state.Running = false
			}
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one display refresh: input, resize, simulation, draw.
func (c *Client) frame(now time.Time, in input.Input) error {
	c.processInput(now, in)
	if !c.state.Running {
		return nil
	}
	c.updateScreen()
	c.game.Tick(now)
	return c.drawFrame(c.game.Snapshot(now))
}

// processInput turns raw keys into direction and session actions.
func (c *Client) processInput(now time.Time, in input.Input) {
	if len(in.Pressed) > 0 {
		c.state.lastInput = now
		c.state.isInactive = false
	}

	// Idle players are only dropped from menus; a running game keeps them.
	if c.noIdleLimit || c.game.Session.State().GameStarted() {
		c.state.lastInput = now
	} else {
		idle := now.Sub(c.state.lastInput)
		switch {
		case idle > c.idleDisconnect:
			c.logger.Info("disconnecting idle client", "idle", idle.Round(time.Second))
			c.state.Running = false
			return
		case idle > c.idleWarn:
			c.state.isInactive = true
		}
	}

	f := c.tracker.Track(in)
	c.game.SetDirection(f.Direction)
	for _, a := range f.Actions {
		if a == input.ActionQuit {
			c.state.Running = false
			return
		}
		c.game.Dispatch(a)
	}
}

// updateScreen fits the canvas into the terminal, keeping the playfield
// aspect ratio.
func (c *Client) updateScreen() {
	termCols, termRows, err := c.termSizeFunc()
	if err != nil {
		return
	}
	screen := c.game.World.Screen
	c.canvas.SetLogicalSize(screen.Width, screen.Height)

	// Four rows are reserved: the border and a status line above and below.
	cols, rows, offCol, offRow := draw.FitArea(termCols, termRows-hudRows, config.MaxTermWidth, config.MaxTermHeight, screen.Width/screen.Height)
	offRow += hudRows / 2
	c.canvas.Resize(cols, rows)
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter.SetOffset(offCol, offRow)
}
