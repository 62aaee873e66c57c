package object

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/skyraid/internal/physics"
)

// AdversaryKind is the size category of an adversary.
type AdversaryKind int

const (
	AdversarySmall AdversaryKind = iota
	AdversaryMedium
	AdversaryLarge
)

// String returns the kind name.
func (k AdversaryKind) String() string {
	switch k {
	case AdversarySmall:
		return "small"
	case AdversaryMedium:
		return "medium"
	case AdversaryLarge:
		return "large"
	default:
		return "unknown"
	}
}

// MovementPattern selects how an adversary drifts horizontally while falling.
type MovementPattern int

const (
	PatternStraight MovementPattern = iota
	PatternZigzag
	PatternSine
)

// String returns the pattern name.
func (m MovementPattern) String() string {
	switch m {
	case PatternStraight:
		return "straight"
	case PatternZigzag:
		return "zigzag"
	case PatternSine:
		return "sine"
	default:
		return "unknown"
	}
}

// ParseAdversaryKind maps a kind name back to its AdversaryKind.
func ParseAdversaryKind(name string) (AdversaryKind, error) {
	for _, k := range []AdversaryKind{AdversarySmall, AdversaryMedium, AdversaryLarge} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown adversary kind %q", name)
}

// ParseMovementPattern maps a pattern name back to its MovementPattern.
func ParseMovementPattern(name string) (MovementPattern, error) {
	for _, m := range []MovementPattern{PatternStraight, PatternZigzag, PatternSine} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown movement pattern %q", name)
}

// AdversaryType is one row of the kind table.
type AdversaryType struct {
	Kind          AdversaryKind
	Width, Height float64
	Speed         float64
	ScoreValue    int
	Health        int
	Pattern       MovementPattern
}

// DefaultAdversaryTypes is the built-in kind table, weakest first.
var DefaultAdversaryTypes = []AdversaryType{
	{Kind: AdversarySmall, Width: 30, Height: 30, Speed: 2, ScoreValue: 10, Health: 1, Pattern: PatternStraight},
	{Kind: AdversaryMedium, Width: 40, Height: 40, Speed: 1.5, ScoreValue: 20, Health: 2, Pattern: PatternZigzag},
	{Kind: AdversaryLarge, Width: 60, Height: 60, Speed: 1, ScoreValue: 30, Health: 3, Pattern: PatternSine},
}

// Pattern tuning.
const (
	zigzagFrequency = 0.05
	zigzagAmplitude = 2.0
	sineFrequency   = 0.002 // Per millisecond of wall-clock time
	sineAmplitude   = 2.0
)

// Adversary is a hostile falling craft.
type Adversary struct {
	Entity
	Active     bool
	ScoreValue int
	Kind       AdversaryKind
	Health     int
	Pattern    MovementPattern
	OriginX    float64 // Spawn x; the sine pattern oscillates around it
}

// NewAdversary creates an adversary of type t at (x, y) with its speed scaled.
func NewAdversary(t AdversaryType, x, y, speedMultiplier float64) *Adversary {
	return &Adversary{
		Entity: Entity{
			X:      x,
			Y:      y,
			Width:  t.Width,
			Height: t.Height,
			Speed:  t.Speed * speedMultiplier,
		},
		Active:     true,
		ScoreValue: t.ScoreValue,
		Kind:       t.Kind,
		Health:     t.Health,
		Pattern:    t.Pattern,
		OriginX:    x,
	}
}

// MarkDestroyed deactivates the adversary.
func (a *Adversary) MarkDestroyed() {
	a.Active = false
}

// IsDestroyed returns true once the adversary has been deactivated.
func (a *Adversary) IsDestroyed() bool {
	return !a.Active
}

// Damage subtracts power from health and deactivates the adversary when
// health reaches zero. Reports whether this hit was the kill.
func (a *Adversary) Damage(power int) bool {
	if !a.Active {
		return false
	}
	a.Health -= power
	if a.Health <= 0 {
		a.Active = false
		return true
	}
	return false
}

// advance moves the adversary down, applies its movement pattern, and
// deactivates it once it has fallen past the bottom edge.
func (a *Adversary) advance(now time.Time, screen Screen) {
	if !a.Active {
		return
	}

	a.Y += a.Speed

	switch a.Pattern {
	case PatternZigzag:
		a.X += math.Sin(a.Y*zigzagFrequency) * zigzagAmplitude
	case PatternSine:
		ms := float64(now.UnixMilli())
		a.X = a.OriginX + math.Sin(ms*sineFrequency)*sineAmplitude
	}

	a.X = physics.Clamp(a.X, 0, screen.Width-a.Width)

	if a.Y >= screen.Height {
		a.Active = false
	}
}
