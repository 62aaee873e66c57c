package object

import (
	"github.com/tomz197/skyraid/internal/loop/config"
)

// PowerUpKind identifies the effect of a pickup.
type PowerUpKind int

const (
	PowerUpSpeed PowerUpKind = iota
	PowerUpDoubleFire
	PowerUpShield
	PowerUpBomb
)

// PowerUpKinds lists every kind, in the order used for random drops.
var PowerUpKinds = []PowerUpKind{PowerUpSpeed, PowerUpDoubleFire, PowerUpShield, PowerUpBomb}

// String returns the kind name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeed:
		return "speedUp"
	case PowerUpDoubleFire:
		return "doubleFire"
	case PowerUpShield:
		return "shield"
	case PowerUpBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Timed reports whether the kind stays on the player for a duration.
func (k PowerUpKind) Timed() bool {
	return k != PowerUpBomb
}

// Pickup is a collectible falling power-up.
type Pickup struct {
	Entity
	Active bool
	Kind   PowerUpKind
}

// NewPickup creates a pickup of kind with its top-left corner at (x, y).
func NewPickup(kind PowerUpKind, x, y float64) *Pickup {
	return &Pickup{
		Entity: Entity{
			X:      x,
			Y:      y,
			Width:  config.PickupWidth,
			Height: config.PickupHeight,
			Speed:  config.PickupSpeed,
		},
		Active: true,
		Kind:   kind,
	}
}

// MarkDestroyed deactivates the pickup.
func (p *Pickup) MarkDestroyed() {
	p.Active = false
}

// IsDestroyed returns true once the pickup has been collected or lost.
func (p *Pickup) IsDestroyed() bool {
	return !p.Active
}

// advance moves the pickup down and deactivates it past the bottom edge.
func (p *Pickup) advance(screen Screen) {
	if !p.Active {
		return
	}
	p.Y += p.Speed
	if p.Y >= screen.Height {
		p.Active = false
	}
}
