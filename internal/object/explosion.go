package object

import (
	"time"
)

// Explosion is a short-lived cosmetic effect. It never collides.
type Explosion struct {
	X, Y      float64 // Center
	Size      float64
	StartTime time.Time
	Duration  time.Duration
}

// NewExplosion creates an explosion centered at (x, y) starting at now.
func NewExplosion(x, y, size float64, now time.Time, duration time.Duration) Explosion {
	return Explosion{
		X:         x,
		Y:         y,
		Size:      size,
		StartTime: now,
		Duration:  duration,
	}
}

// Progress returns elapsed/duration, clamped to [0, 1].
func (e Explosion) Progress(now time.Time) float64 {
	if e.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(e.StartTime)) / float64(e.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Expired reports whether the explosion has run its full duration.
func (e Explosion) Expired(now time.Time) bool {
	return now.Sub(e.StartTime) >= e.Duration
}
