package loop

import (
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

// collisionCellSize matches the largest built-in adversary.
const collisionCellSize = 60

// Collisions tests entity categories against each other and dispatches hits
// to handlers. It keeps no entity references between calls; the broad-phase
// grid is reused across frames.
type Collisions struct {
	grid   *physics.SpatialGrid
	screen object.Screen
}

// NewCollisions creates a collision engine sized for screen.
func NewCollisions(screen object.Screen) *Collisions {
	c := &Collisions{}
	c.resize(screen)
	return c
}

func (c *Collisions) resize(screen object.Screen) {
	if c.grid != nil && screen == c.screen {
		return
	}
	c.screen = screen
	c.grid = physics.NewSpatialGrid(max(screen.Width, 1), max(screen.Height, 1), collisionCellSize)
}

// ResolveProjectileAdversaryHits tests every active projectile against the
// active adversaries in insertion order. On the first overlap the projectile
// is deactivated, onHit runs once and scanning for that projectile stops.
// onHit decides what happens to the adversary. Returns the number of hits.
func (c *Collisions) ResolveProjectileAdversaryHits(
	projectiles []*object.Projectile,
	adversaries []*object.Adversary,
	onHit func(p *object.Projectile, a *object.Adversary),
) int {
	if len(projectiles) == 0 || len(adversaries) == 0 {
		return 0
	}

	c.grid.Clear()
	for i, a := range adversaries {
		if a.Active {
			c.grid.Insert(a.Bounds(), i)
		}
	}

	hits := 0
	for _, p := range projectiles {
		if !p.Active {
			continue
		}
		pb := p.Bounds()
		c.grid.Query(pb, func(i int) bool {
			a := adversaries[i]
			if !a.Active {
				return false
			}
			ab := a.Bounds()
			if !physics.MayOverlap(pb, ab, config.ProjectileHitMargin) || !physics.Overlaps(pb, ab) {
				return false
			}
			p.MarkDestroyed()
			onHit(p, a)
			hits++
			return true
		})
	}
	return hits
}

// ResolvePlayerAdversaryHits reports whether the player collided with an
// active adversary this frame, calling onHit for the first one only. Nothing
// is tested while the player is invulnerable.
func ResolvePlayerAdversaryHits(player *object.Player, adversaries []*object.Adversary, onHit func(a *object.Adversary)) bool {
	if player.Invulnerable {
		return false
	}
	pb := player.Bounds()
	for _, a := range adversaries {
		if !a.Active {
			continue
		}
		ab := a.Bounds()
		if physics.MayOverlap(pb, ab, config.PlayerHitMargin) && physics.Overlaps(pb, ab) {
			onHit(a)
			return true
		}
	}
	return false
}

// ResolvePlayerPickupHits returns the first active pickup the player
// touches after passing it to onCollect, or nil.
func ResolvePlayerPickupHits(player *object.Player, pickups []*object.Pickup, onCollect func(p *object.Pickup)) *object.Pickup {
	pb := player.Bounds()
	for _, p := range pickups {
		if p.Active && physics.Overlaps(pb, p.Bounds()) {
			onCollect(p)
			return p
		}
	}
	return nil
}
