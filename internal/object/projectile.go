package object

import (
	"github.com/tomz197/skyraid/internal/loop/config"
)

// Projectile is a shot fired by the player, travelling straight up.
type Projectile struct {
	Entity
	Active bool
	Power  int
}

// NewProjectile creates a projectile whose horizontal center is at centerX
// and whose top edge is at y.
func NewProjectile(centerX, y float64) *Projectile {
	return &Projectile{
		Entity: Entity{
			X:      centerX - config.ProjectileWidth/2.0,
			Y:      y,
			Width:  config.ProjectileWidth,
			Height: config.ProjectileHeight,
			Speed:  config.ProjectileSpeed,
		},
		Active: true,
		Power:  config.ProjectilePower,
	}
}

// MarkDestroyed deactivates the projectile.
func (p *Projectile) MarkDestroyed() {
	p.Active = false
}

// IsDestroyed returns true once the projectile has been deactivated.
func (p *Projectile) IsDestroyed() bool {
	return !p.Active
}

// advance moves the projectile up and deactivates it once its bottom
// edge has left the top of the screen.
func (p *Projectile) advance() {
	if !p.Active {
		return
	}
	p.Y -= p.Speed
	if p.Y+p.Height < 0 {
		p.Active = false
	}
}
