package object

import (
	"time"

	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/physics"
)

// ActivePowerUp is a timed power-up held by the player.
type ActivePowerUp struct {
	Kind      PowerUpKind
	ExpiresAt time.Time
}

// Player is the player-controlled craft.
type Player struct {
	Entity
	Invulnerable      bool
	InvulnerableUntil time.Time
	PowerUps          []ActivePowerUp // Unique kinds, in acquisition order
}

// NewPlayer creates a player centered horizontally near the bottom of the screen.
func NewPlayer(screen Screen) Player {
	p := Player{
		Entity: Entity{
			Width:  config.PlayerWidth,
			Height: config.PlayerHeight,
			Speed:  config.PlayerBaseSpeed,
		},
	}
	p.placeAtStart(screen)
	return p
}

// placeAtStart moves the player to its spawn point for the given screen.
func (p *Player) placeAtStart(screen Screen) {
	p.X = screen.Width/2 - p.Width/2
	p.Y = screen.Height - p.Height - config.PlayerBottomMargin
	p.clamp(screen)
}

// clamp keeps the player inside [0, w-width] x [0, h-height].
func (p *Player) clamp(screen Screen) {
	p.X = physics.Clamp(p.X, 0, screen.Width-p.Width)
	p.Y = physics.Clamp(p.Y, 0, screen.Height-p.Height)
}

// HasPowerUp reports whether kind is currently held.
func (p *Player) HasPowerUp(kind PowerUpKind) bool {
	return p.powerUpIndex(kind) >= 0
}

func (p *Player) powerUpIndex(kind PowerUpKind) int {
	for i, pu := range p.PowerUps {
		if pu.Kind == kind {
			return i
		}
	}
	return -1
}

// grant adds kind or, if already held, pushes its expiry out.
func (p *Player) grant(kind PowerUpKind, expiresAt time.Time) {
	if i := p.powerUpIndex(kind); i >= 0 {
		p.PowerUps[i].ExpiresAt = expiresAt
	} else {
		p.PowerUps = append(p.PowerUps, ActivePowerUp{Kind: kind, ExpiresAt: expiresAt})
	}
	if kind == PowerUpSpeed {
		p.Speed = config.PlayerBoostedSpeed
	}
}

// revoke removes kind and undoes its effect.
func (p *Player) revoke(kind PowerUpKind) {
	i := p.powerUpIndex(kind)
	if i < 0 {
		return
	}
	p.PowerUps = append(p.PowerUps[:i], p.PowerUps[i+1:]...)
	if kind == PowerUpSpeed {
		p.Speed = config.PlayerBaseSpeed
	}
}

// expire drops every power-up whose expiry is at or before now and clears
// invulnerability once now is past its deadline. Reports whether anything changed.
func (p *Player) expire(now time.Time) bool {
	changed := false
	for i := 0; i < len(p.PowerUps); {
		if !now.Before(p.PowerUps[i].ExpiresAt) {
			p.revoke(p.PowerUps[i].Kind)
			changed = true
			continue
		}
		i++
	}
	if p.Invulnerable && now.After(p.InvulnerableUntil) {
		p.Invulnerable = false
		p.InvulnerableUntil = time.Time{}
		changed = true
	}
	return changed
}

// makeInvulnerable grants invulnerability until now+d.
func (p *Player) makeInvulnerable(now time.Time, d time.Duration) {
	p.Invulnerable = true
	p.InvulnerableUntil = now.Add(d)
}

// move applies the held directions scaled by the current speed.
func (p *Player) move(dir input.Direction, screen Screen) {
	if dir.Left {
		p.X -= p.Speed
	}
	if dir.Right {
		p.X += p.Speed
	}
	if dir.Up {
		p.Y -= p.Speed
	}
	if dir.Down {
		p.Y += p.Speed
	}
	p.clamp(screen)
}

// Snapshot returns a deep copy safe to hand to presentation.
func (p Player) Snapshot() Player {
	p.PowerUps = append([]ActivePowerUp(nil), p.PowerUps...)
	return p
}

// ShouldRenderBlink returns true if an object with remaining invulnerability
// time should be rendered this frame (for blinking effect).
// Returns true always if remaining <= 0.
func ShouldRenderBlink(remaining time.Duration, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	phase := int(remaining.Seconds() * frequency)
	return phase%2 != 0
}
