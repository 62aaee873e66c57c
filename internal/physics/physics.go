// Package physics provides axis-aligned bounding box collision tests.
package physics

import "math"

// Box is an axis-aligned rectangle. X and Y are the top-left corner.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Top returns the top edge.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Overlaps reports whether two boxes intersect.
// Edges that only touch do not count as a collision.
func Overlaps(a, b Box) bool {
	return a.Left() < b.Right() &&
		a.Right() > b.Left() &&
		a.Top() < b.Bottom() &&
		a.Bottom() > b.Top()
}

// MayOverlap is a coarse pre-filter comparing center distance against the
// half-extent sums plus margin. It never rejects a pair that Overlaps accepts
// for margin >= 0.
func MayOverlap(a, b Box, margin float64) bool {
	ax, ay := a.Center()
	bx, by := b.Center()

	maxDX := (a.Width+b.Width)/2 + margin
	maxDY := (a.Height+b.Height)/2 + margin

	return math.Abs(ax-bx) < maxDX && math.Abs(ay-by) < maxDY
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
