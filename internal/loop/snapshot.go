package loop

import (
	"time"

	"github.com/tanema/gween/ease"

	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/session"
	"github.com/tomz197/skyraid/internal/stage"
)

// ExplosionView is an explosion with its derived animation state.
type ExplosionView struct {
	object.Explosion
	Progress float64 // elapsed/duration in [0, 1]
	Scale    float64 // Eased Progress for sizing
}

// Snapshot is a read-only copy of everything presentation needs for a frame.
// It shares no memory with the Game.
type Snapshot struct {
	Time   time.Time
	Screen object.Screen

	Player        object.Player
	PlayerVisible bool // False during the off phase of the invulnerability blink

	Projectiles []object.Projectile
	Adversaries []object.Adversary
	Pickups     []object.Pickup
	Explosions  []ExplosionView

	Session       session.State
	StageScore    int
	KillCount     int
	KillsRequired int
	StageClear    bool
	Settings      stage.Settings
	Scroll        float64
}

// Snapshot captures the current state at now.
func (g *Game) Snapshot(now time.Time) Snapshot {
	w := g.World
	st := g.Session.State()

	s := Snapshot{
		Time:          now,
		Screen:        w.Screen,
		Player:        w.Player.Snapshot(),
		PlayerVisible: true,
		Projectiles:   make([]object.Projectile, 0, len(w.Projectiles)),
		Adversaries:   make([]object.Adversary, 0, len(w.Adversaries)),
		Pickups:       make([]object.Pickup, 0, len(w.Pickups)),
		Explosions:    make([]ExplosionView, 0, len(w.Explosions)),
		Session:       st,
		StageScore:    g.Stage.StageScore(),
		KillCount:     g.Stage.KillCount(),
		KillsRequired: stage.KillsRequired(st.Stage),
		StageClear:    g.Stage.ClearDisplayActive(),
		Settings:      g.Stage.SettingsFor(st.Stage),
		Scroll:        g.scroll,
	}

	if w.Player.Invulnerable {
		s.PlayerVisible = object.ShouldRenderBlink(w.Player.InvulnerableUntil.Sub(now), config.PlayerBlinkHz)
	}

	for _, p := range w.Projectiles {
		if p.Active {
			s.Projectiles = append(s.Projectiles, *p)
		}
	}
	for _, a := range w.Adversaries {
		if a.Active {
			s.Adversaries = append(s.Adversaries, *a)
		}
	}
	for _, p := range w.Pickups {
		if p.Active {
			s.Pickups = append(s.Pickups, *p)
		}
	}
	for _, e := range w.Explosions {
		progress := e.Progress(now)
		s.Explosions = append(s.Explosions, ExplosionView{
			Explosion: e,
			Progress:  progress,
			Scale:     float64(ease.OutQuad(float32(progress), 0, 1, 1)),
		})
	}
	return s
}
