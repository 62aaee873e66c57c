package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop/config"
)

// World owns every entity collection and their per-frame update rules.
// It never renders. All methods must be called from the simulation goroutine.
type World struct {
	Player      Player
	Projectiles []*Projectile
	Adversaries []*Adversary
	Pickups     []*Pickup
	Explosions  []Explosion

	Screen  Screen
	spawner *Spawner
	rng     *rand.Rand
}

// NewWorld creates a world for the given screen. types may be nil for the
// built-in kind table; rng drives spawning and pickup drops.
func NewWorld(screen Screen, types []AdversaryType, rng *rand.Rand) *World {
	return &World{
		Player:  NewPlayer(screen),
		Screen:  screen,
		spawner: NewSpawner(types, rng),
		rng:     rng,
	}
}

// Resize changes the playfield and re-clamps the player without resetting it.
func (w *World) Resize(screen Screen) {
	w.Screen = screen
	w.Player.clamp(screen)
}

// AdvancePlayer applies directional input and expires timed player state.
func (w *World) AdvancePlayer(dir input.Direction, now time.Time) Player {
	expired := w.Player.expire(now)
	if !dir.Any() && !expired {
		return w.Player
	}
	w.Player.move(dir, w.Screen)
	return w.Player
}

// Fire spawns one projectile centered on the player, or two at 1/4 and 3/4
// of its width with double fire. It returns the new last-fire time, or false
// if the cooldown has not elapsed.
func (w *World) Fire(now, lastFire time.Time, cooldown time.Duration) (time.Time, bool) {
	if !cooledDown(now, lastFire, cooldown) {
		return lastFire, false
	}

	p := &w.Player
	if p.HasPowerUp(PowerUpDoubleFire) {
		w.Projectiles = append(w.Projectiles,
			NewProjectile(p.X+p.Width/4, p.Y),
			NewProjectile(p.X+p.Width*3/4, p.Y),
		)
	} else {
		w.Projectiles = append(w.Projectiles, NewProjectile(p.X+p.Width/2, p.Y))
	}
	return now, true
}

// AdvanceProjectiles moves projectiles up and prunes those that left the screen.
func (w *World) AdvanceProjectiles() {
	for _, p := range w.Projectiles {
		p.advance()
	}
	w.Projectiles = prune(w.Projectiles)
}

// Spawn adds one adversary fully above the screen at a random x. It is
// gated by spawnRate exactly like Fire and does nothing on an empty screen.
func (w *World) Spawn(now, lastSpawn time.Time, spawnRate time.Duration, stage int, speedMultiplier float64) (time.Time, bool) {
	if !cooledDown(now, lastSpawn, spawnRate) || w.Screen.Width <= 0 {
		return lastSpawn, false
	}

	t := w.spawner.Pick(stage)
	x := w.spawner.X(w.Screen, t.Width)
	w.Adversaries = append(w.Adversaries, NewAdversary(t, x, -t.Height, speedMultiplier))
	return now, true
}

// AdvanceAdversaries moves adversaries along their pattern and prunes escapees.
func (w *World) AdvanceAdversaries(now time.Time) {
	for _, a := range w.Adversaries {
		a.advance(now, w.Screen)
	}
	w.Adversaries = prune(w.Adversaries)
}

// AdvancePickups moves pickups down and prunes those that left the screen.
func (w *World) AdvancePickups() {
	for _, p := range w.Pickups {
		p.advance(w.Screen)
	}
	w.Pickups = prune(w.Pickups)
}

// DropPickup rolls the drop chance and, on success, spawns a random pickup
// at (x, y). Returns the pickup or nil.
func (w *World) DropPickup(x, y float64) *Pickup {
	if w.rng.Float64() >= config.PickupChance {
		return nil
	}
	kind := PowerUpKinds[w.rng.Intn(len(PowerUpKinds))]
	p := NewPickup(kind, x, y)
	w.Pickups = append(w.Pickups, p)
	return p
}

// ApplyPowerUp grants a timed power-up, or detonates a bomb: every active
// adversary is destroyed with an explosion at its center and its score
// value is passed to award.
func (w *World) ApplyPowerUp(kind PowerUpKind, now time.Time, award func(points int)) {
	if kind.Timed() {
		w.Player.grant(kind, now.Add(config.PowerUpDuration))
		return
	}

	for _, a := range w.Adversaries {
		if !a.Active {
			continue
		}
		a.MarkDestroyed()
		cx, cy := a.Center()
		w.AddExplosion(cx, cy, now)
		if award != nil {
			award(a.ScoreValue)
		}
	}
	w.Adversaries = prune(w.Adversaries)
}

// ConsumeShield removes an active shield and grants shield invulnerability.
// Reports whether a shield was consumed.
func (w *World) ConsumeShield(now time.Time) bool {
	if !w.Player.HasPowerUp(PowerUpShield) {
		return false
	}
	w.Player.revoke(PowerUpShield)
	w.Player.makeInvulnerable(now, config.ShieldInvulnerability)
	return true
}

// MakePlayerInvulnerable grants invulnerability for d.
func (w *World) MakePlayerInvulnerable(now time.Time, d time.Duration) {
	w.Player.makeInvulnerable(now, d)
}

// AddExplosion adds an explosion with the default size and duration.
func (w *World) AddExplosion(x, y float64, now time.Time) {
	w.AddExplosionSized(x, y, config.ExplosionSize, config.ExplosionDuration, now)
}

// AddExplosionSized adds an explosion with an explicit size and duration.
func (w *World) AddExplosionSized(x, y, size float64, duration time.Duration, now time.Time) {
	w.Explosions = append(w.Explosions, NewExplosion(x, y, size, now, duration))
}

// AdvanceExplosions drops explosions whose elapsed time reached their duration.
func (w *World) AdvanceExplosions(now time.Time) {
	kept := w.Explosions[:0]
	for _, e := range w.Explosions {
		if !e.Expired(now) {
			kept = append(kept, e)
		}
	}
	w.Explosions = kept
}

// Prune removes every deactivated entity. Called at the end of each frame
// so nothing inactive survives into the next one.
func (w *World) Prune() {
	w.Projectiles = prune(w.Projectiles)
	w.Adversaries = prune(w.Adversaries)
	w.Pickups = prune(w.Pickups)
}

// ResetAll clears every collection and resets the player, dropping any
// pending power-up expiries with it.
func (w *World) ResetAll() {
	w.Projectiles = nil
	w.Adversaries = nil
	w.Pickups = nil
	w.Explosions = nil
	w.Player = NewPlayer(w.Screen)
}
