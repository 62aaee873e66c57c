// Package session holds the externally visible game state and the actions
// that drive it.
package session

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/loop/config"
)

// Phase is the top-level session state.
type Phase int

const (
	NotStarted Phase = iota
	Playing
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game-over"
	}
	return "unknown"
}

// HighScoreStore persists the best score. Implementations swallow their own
// failures: Load returns 0 when nothing is stored.
type HighScoreStore interface {
	Load() int
	Save(score int)
}

// State is a read-only view of the session.
type State struct {
	Phase      Phase
	Stage      int
	Score      int
	HighScore  int
	Lives      int
	IsShooting bool
}

func (s State) GameStarted() bool { return s.Phase == Playing || s.Phase == Paused }
func (s State) GameOver() bool    { return s.Phase == GameOver }
func (s State) GamePaused() bool  { return s.Phase == Paused }

func initialState(highScore int) State {
	return State{
		Phase:     NotStarted,
		Stage:     1,
		Lives:     config.InitialLives,
		HighScore: highScore,
	}
}

// Controller owns the session State. Every action is total: it never fails
// and ignores calls that make no sense in the current phase.
type Controller struct {
	state  State
	store  HighScoreStore
	logger *log.Logger
}

// NewController creates a controller in the NotStarted phase with the high
// score loaded from store. store may be nil.
func NewController(store HighScoreStore, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	high := 0
	if store != nil {
		high = store.Load()
	}
	return &Controller{
		state:  initialState(high),
		store:  store,
		logger: logger,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// StartNewGame resets everything but the high score and starts playing.
func (c *Controller) StartNewGame() {
	c.state = initialState(c.state.HighScore)
	c.state.Phase = Playing
	c.logger.Info("game started", "high_score", c.state.HighScore)
}

// EndGame enters GameOver and records a new high score.
func (c *Controller) EndGame() {
	c.state.Phase = GameOver
	c.state.IsShooting = false
	c.logger.Info("game over", "score", c.state.Score, "stage", c.state.Stage)

	if c.state.Score <= c.state.HighScore {
		return
	}
	c.state.HighScore = c.state.Score
	if c.store != nil {
		c.store.Save(c.state.HighScore)
	}
}

// AdvanceStage moves to the next stage.
func (c *Controller) AdvanceStage() {
	c.state.Stage++
	c.logger.Debug("stage advanced", "stage", c.state.Stage)
}

// IncrementScore adds points; non-positive values are ignored.
func (c *Controller) IncrementScore(points int) {
	if points <= 0 {
		return
	}
	c.state.Score += points
}

// TogglePause switches between Playing and Paused and always stops shooting.
// It does nothing once the game is over or before it started.
func (c *Controller) TogglePause() {
	switch c.state.Phase {
	case Playing:
		c.state.Phase = Paused
	case Paused:
		c.state.Phase = Playing
	default:
		return
	}
	c.state.IsShooting = false
}

// DecrementLives removes one life, never going below zero.
func (c *Controller) DecrementLives() {
	c.state.Lives = max(c.state.Lives-1, 0)
}

// StartShooting sets the firing flag unless paused.
func (c *Controller) StartShooting() {
	if c.state.Phase == Paused {
		return
	}
	c.state.IsShooting = true
}

func (c *Controller) StopShooting() {
	c.state.IsShooting = false
}

// ReturnToMenu resets everything but the high score.
func (c *Controller) ReturnToMenu() {
	c.state = initialState(c.state.HighScore)
}
