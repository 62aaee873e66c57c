// Package loop runs the simulation: one Game per player session, advanced
// once per display refresh.
package loop

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/clock"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/session"
	"github.com/tomz197/skyraid/internal/stage"
)

// Options configures a Game. Zero values select the built-in defaults.
type Options struct {
	Screen      object.Screen
	Stages      []stage.Settings
	Adversaries []object.AdversaryType
	Store       session.HighScoreStore
	Rand        *rand.Rand
	Logger      *log.Logger
	TargetFPS   int // Optional update rate cap, 0 = every refresh
}

// Game wires the entity store, collision engine, stage director, clock and
// session controller into the per-frame update. A Game is driven from a
// single goroutine.
type Game struct {
	World   *object.World
	Session *session.Controller
	Stage   *stage.Director
	Clock   *clock.Clock
	Timers  *clock.Timers

	collisions *Collisions
	logger     *log.Logger

	dir       input.Direction
	lastFire  time.Time
	lastSpawn time.Time
	scroll    float64

	gameOverPending bool
}

// NewGame creates a game at the start menu.
func NewGame(opts Options) *Game {
	if !opts.Screen.Valid() {
		opts.Screen = object.Screen{Width: config.DefaultWidth, Height: config.DefaultHeight}
	}
	opts.Screen = opts.Screen.Clamp(config.MaxPlayfieldWidth, config.MaxPlayfieldHeight)
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	g := &Game{
		World:      object.NewWorld(opts.Screen, opts.Adversaries, opts.Rand),
		Session:    session.NewController(opts.Store, opts.Logger),
		Timers:     &clock.Timers{},
		collisions: NewCollisions(opts.Screen),
		logger:     opts.Logger,
	}
	g.Stage = stage.NewDirector(opts.Stages, g.Timers, g.Session.AdvanceStage)
	g.Clock = clock.New(g.update, clock.WithTargetFPS(opts.TargetFPS), clock.WithLogger(opts.Logger))
	return g
}

// Tick handles one display refresh: due deferred callbacks run first, then
// the clock decides whether the simulation advances.
func (g *Game) Tick(now time.Time) {
	g.Timers.Fire(now)
	g.Clock.Frame(now)
}

// SetDirection sets the held directional input used by the next frame.
func (g *Game) SetDirection(dir input.Direction) {
	g.dir = dir
}

// Resize changes the playfield without touching score, lives or stage.
// Sizes past MaxPlayfieldWidth/Height are clamped; empty ones are ignored.
func (g *Game) Resize(screen object.Screen) {
	if !screen.Valid() {
		return
	}
	screen = screen.Clamp(config.MaxPlayfieldWidth, config.MaxPlayfieldHeight)
	if screen == g.World.Screen {
		return
	}
	g.World.Resize(screen)
	g.collisions.resize(screen)
}

// Dispatch applies a discrete input action. Quit is left to the caller.
func (g *Game) Dispatch(a input.Action) {
	st := g.Session.State()
	switch a {
	case input.ActionFireStart:
		if st.GameStarted() {
			g.Session.StartShooting()
		} else {
			g.StartNewGame()
		}
	case input.ActionFireStop:
		g.Session.StopShooting()
	case input.ActionConfirm:
		if !st.GameStarted() {
			g.StartNewGame()
		}
	case input.ActionPauseToggle:
		if st.GameStarted() {
			g.TogglePause()
		}
	case input.ActionMenu:
		if st.GamePaused() || st.GameOver() {
			g.ReturnToMenu()
		}
	}
}

// StartNewGame resets the world and every counter but the high score.
func (g *Game) StartNewGame() {
	g.resetSimulation()
	g.Session.StartNewGame()
	g.Clock.SetRunning(true)
}

// TogglePause pauses or resumes. Pausing cancels the frame callback;
// resuming restarts it without a catch-up delta. Power-up and
// invulnerability deadlines keep running on wall-clock time.
func (g *Game) TogglePause() {
	g.Session.TogglePause()
	if g.Session.State().GamePaused() {
		g.Clock.Pause()
		return
	}
	g.Clock.Reset()
	g.Clock.Resume()
}

// ReturnToMenu abandons the current game.
func (g *Game) ReturnToMenu() {
	g.resetSimulation()
	g.Session.ReturnToMenu()
	g.Clock.SetRunning(false)
}

func (g *Game) resetSimulation() {
	g.Timers.StopAll()
	g.Stage.Reset()
	g.World.ResetAll()
	g.lastFire = time.Time{}
	g.lastSpawn = time.Time{}
	g.scroll = 0
	g.gameOverPending = false
	g.Clock.Reset()
	g.Clock.Resume()
}

// update is the per-frame simulation callback.
func (g *Game) update(now time.Time, _ time.Duration) {
	st := g.Session.State()
	if st.Phase != session.Playing || g.Stage.ClearDisplayActive() {
		return
	}

	w := g.World
	w.AdvancePlayer(g.dir, now)

	if st.IsShooting {
		if t, ok := w.Fire(now, g.lastFire, config.FireCooldown); ok {
			g.lastFire = t
		}
	}

	settings := g.Stage.SettingsFor(st.Stage)
	spawnRate := time.Duration(float64(config.SpawnBasePeriod) * settings.EnemySpawnRateMultiplier)
	if t, ok := w.Spawn(now, g.lastSpawn, spawnRate, st.Stage, settings.EnemySpeedMultiplier); ok {
		g.lastSpawn = t
	}

	w.AdvanceProjectiles()
	w.AdvanceAdversaries(now)
	w.AdvancePickups()
	w.AdvanceExplosions(now)
	g.scroll = math.Mod(g.scroll+config.ScrollSpeed, config.ScrollPeriod)

	g.collisions.ResolveProjectileAdversaryHits(w.Projectiles, w.Adversaries, func(p *object.Projectile, a *object.Adversary) {
		g.onProjectileHit(p, a, now)
	})
	ResolvePlayerAdversaryHits(&w.Player, w.Adversaries, func(a *object.Adversary) {
		g.onPlayerHit(a, now)
	})
	ResolvePlayerPickupHits(&w.Player, w.Pickups, func(p *object.Pickup) {
		g.onPickup(p, now)
	})

	g.Stage.CheckClear(g.Session.State().Stage, now)
	w.Prune()
}

func (g *Game) onProjectileHit(p *object.Projectile, a *object.Adversary, now time.Time) {
	if !a.Damage(p.Power) {
		return
	}
	g.Session.IncrementScore(a.ScoreValue)
	g.Stage.AddScore(a.ScoreValue)
	g.Stage.RegisterKill()

	cx, cy := a.Center()
	g.World.AddExplosion(cx, cy, now)
	g.World.DropPickup(a.X, a.Y)
}

func (g *Game) onPlayerHit(a *object.Adversary, now time.Time) {
	a.MarkDestroyed()
	cx, cy := a.Center()
	g.World.AddExplosion(cx, cy, now)

	if g.World.ConsumeShield(now) {
		return
	}

	lives := g.Session.State().Lives
	g.Session.DecrementLives()
	g.World.MakePlayerInvulnerable(now, config.HitInvulnerability)

	if lives <= 1 && !g.gameOverPending {
		g.gameOverPending = true
		g.Clock.SetRunning(false)
		g.Stage.Reset()
		g.Timers.AfterFunc(now, config.GameOverDelay, g.Session.EndGame)
	}
}

func (g *Game) onPickup(p *object.Pickup, now time.Time) {
	p.MarkDestroyed()
	g.World.ApplyPowerUp(p.Kind, now, g.Session.IncrementScore)
}

// Scroll returns the background scroll offset.
func (g *Game) Scroll() float64 {
	return g.scroll
}
