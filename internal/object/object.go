// Package object holds the simulation entities and the World that owns them.
package object

import (
	"time"

	"github.com/tomz197/skyraid/internal/physics"
)

// Entity is the spatial shape shared by every collidable object.
// X and Y are the top-left corner in playfield coordinates (y grows downward).
type Entity struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per frame
}

// Bounds returns the collision box of the entity.
func (e Entity) Bounds() physics.Box {
	return physics.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Center returns the center point of the entity.
func (e Entity) Center() (float64, float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

// Screen represents the playfield dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// Valid reports whether the playfield has a usable size.
func (s Screen) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Clamp limits each dimension to the given maximum.
func (s Screen) Clamp(maxWidth, maxHeight float64) Screen {
	return Screen{Width: min(s.Width, maxWidth), Height: min(s.Height, maxHeight)}
}

// Destructible is implemented by objects that can be deactivated and pruned.
type Destructible interface {
	// MarkDestroyed deactivates the object; it is pruned by the end of the frame.
	MarkDestroyed()
	// IsDestroyed returns true if the object has been deactivated.
	IsDestroyed() bool
}

// prune removes deactivated objects in place, keeping insertion order.
func prune[T Destructible](objs []T) []T {
	kept := objs[:0] // reuse backing array
	for _, o := range objs {
		if !o.IsDestroyed() {
			kept = append(kept, o)
		}
	}
	clear(objs[len(kept):])
	return kept
}

// cooledDown reports whether at least cooldown has elapsed since last.
// A zero last time always passes.
func cooledDown(now, last time.Time, cooldown time.Duration) bool {
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= cooldown
}
