package object

import (
	"math/rand"

	"github.com/tomz197/skyraid/internal/loop/config"
)

// Spawner picks adversary types, favouring stronger kinds on later stages.
type Spawner struct {
	types []AdversaryType
	rng   *rand.Rand
}

// NewSpawner creates a spawner over types (weakest first). An empty table
// falls back to DefaultAdversaryTypes.
func NewSpawner(types []AdversaryType, rng *rand.Rand) *Spawner {
	if len(types) == 0 {
		types = DefaultAdversaryTypes
	}
	return &Spawner{
		types: types,
		rng:   rng,
	}
}

// Pick selects a type uniformly, then with probability (stage-1)*0.1
// upgrades it to the next-stronger kind, capped at the strongest.
func (s *Spawner) Pick(stage int) AdversaryType {
	idx := s.rng.Intn(len(s.types))
	if s.rng.Float64() < float64(stage-1)*config.UpgradeChancePerStage {
		idx = min(idx+1, len(s.types)-1)
	}
	return s.types[idx]
}

// X returns a uniformly random x that keeps a box of width w inside the screen.
func (s *Spawner) X(screen Screen, w float64) float64 {
	span := screen.Width - w
	if span <= 0 {
		return 0
	}
	return s.rng.Float64() * span
}
