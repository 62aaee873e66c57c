package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/loop/config"
)

type memStore struct {
	value int
	saves []int
}

func (m *memStore) Load() int { return m.value }

func (m *memStore) Save(score int) {
	m.value = score
	m.saves = append(m.saves, score)
}

func newTestController(store HighScoreStore) *Controller {
	return NewController(store, log.New(io.Discard))
}

func TestInitialStateLoadsHighScore(t *testing.T) {
	c := newTestController(&memStore{value: 120})
	s := c.State()
	if s.Phase != NotStarted || s.GameStarted() || s.GameOver() || s.GamePaused() {
		t.Fatalf("unexpected initial phase %v", s.Phase)
	}
	if s.HighScore != 120 || s.Lives != config.InitialLives || s.Stage != 1 {
		t.Fatalf("unexpected initial state %+v", s)
	}
}

func TestIncrementScore(t *testing.T) {
	c := newTestController(nil)
	c.StartNewGame()

	c.IncrementScore(-5)
	c.IncrementScore(0)
	if got := c.State().Score; got != 0 {
		t.Fatalf("score = %d after non-positive increments", got)
	}
	c.IncrementScore(10)
	if got := c.State().Score; got != 10 {
		t.Fatalf("score = %d, want 10", got)
	}
}

func TestTogglePause(t *testing.T) {
	c := newTestController(nil)
	c.TogglePause()
	if c.State().Phase != NotStarted {
		t.Fatal("pause toggled before the game started")
	}

	c.StartNewGame()
	c.StartShooting()
	c.TogglePause()
	s := c.State()
	if !s.GamePaused() || !s.GameStarted() || s.IsShooting {
		t.Fatalf("after pause: %+v", s)
	}

	c.StartShooting()
	if c.State().IsShooting {
		t.Fatal("shooting started while paused")
	}

	c.TogglePause()
	if c.State().Phase != Playing {
		t.Fatalf("phase = %v after resume", c.State().Phase)
	}

	c.EndGame()
	c.TogglePause()
	if c.State().Phase != GameOver {
		t.Fatal("pause toggled after game over")
	}
}

func TestDecrementLivesStopsAtZero(t *testing.T) {
	c := newTestController(nil)
	c.StartNewGame()
	for i := 0; i < config.InitialLives+2; i++ {
		c.DecrementLives()
	}
	if got := c.State().Lives; got != 0 {
		t.Fatalf("lives = %d", got)
	}
}

func TestEndGamePersistsOnlyImprovedHighScore(t *testing.T) {
	store := &memStore{value: 50}
	c := newTestController(store)

	c.StartNewGame()
	c.IncrementScore(30)
	c.EndGame()
	if len(store.saves) != 0 || c.State().HighScore != 50 {
		t.Fatalf("lower score saved: saves=%v high=%d", store.saves, c.State().HighScore)
	}

	c.StartNewGame()
	if c.State().HighScore != 50 || c.State().Score != 0 {
		t.Fatalf("new game state %+v", c.State())
	}
	c.IncrementScore(80)
	c.EndGame()
	s := c.State()
	if !s.GameOver() || s.GameStarted() {
		t.Fatalf("phase = %v", s.Phase)
	}
	if s.HighScore != 80 || len(store.saves) != 1 || store.saves[0] != 80 {
		t.Fatalf("high=%d saves=%v", s.HighScore, store.saves)
	}
}

func TestReturnToMenuKeepsHighScore(t *testing.T) {
	c := newTestController(&memStore{value: 10})
	c.StartNewGame()
	c.AdvanceStage()
	c.IncrementScore(5)
	c.DecrementLives()
	c.ReturnToMenu()

	s := c.State()
	want := State{Phase: NotStarted, Stage: 1, Lives: config.InitialLives, HighScore: 10}
	if s != want {
		t.Fatalf("state = %+v, want %+v", s, want)
	}
}

func TestShootingFlags(t *testing.T) {
	c := newTestController(nil)
	c.StartNewGame()
	c.StartShooting()
	if !c.State().IsShooting {
		t.Fatal("StartShooting did not set the flag")
	}
	c.StopShooting()
	if c.State().IsShooting {
		t.Fatal("StopShooting did not clear the flag")
	}
}
