package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestOverlaps(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"inside", Box{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"partial", Box{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching right edge", Box{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"touching bottom edge", Box{X: 0, Y: 10, Width: 5, Height: 5}, false},
		{"touching corner", Box{X: 10, Y: 10, Width: 5, Height: 5}, false},
		{"apart", Box{X: 30, Y: 30, Width: 5, Height: 5}, false},
		{"above", Box{X: 0, Y: -6, Width: 5, Height: 5}, false},
	}
	for _, tc := range tests {
		if got := Overlaps(a, tc.b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func randomBox(rng *rand.Rand) Box {
	return Box{
		X:      float64(rng.Intn(100)),
		Y:      float64(rng.Intn(100)),
		Width:  float64(1 + rng.Intn(40)),
		Height: float64(1 + rng.Intn(40)),
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		a, b := randomBox(rng), randomBox(rng)
		if Overlaps(a, b) != Overlaps(b, a) {
			t.Fatalf("asymmetric for %+v %+v", a, b)
		}
	}
}

func TestMayOverlapHasNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, margin := range []float64{0, 10, 50} {
		for i := 0; i < 5000; i++ {
			a, b := randomBox(rng), randomBox(rng)
			if Overlaps(a, b) && !MayOverlap(a, b, margin) {
				t.Fatalf("margin %v: false negative for %+v %+v", margin, a, b)
			}
		}
	}
}

func TestMayOverlapRejectsFarPairs(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 10, Height: 10}
	b := Box{X: 100, Y: 0, Width: 10, Height: 10}
	if MayOverlap(a, b, 10) {
		t.Fatal("pair 90 units apart passed a margin of 10")
	}
	if !MayOverlap(a, b, 95) {
		t.Fatal("pair within margin rejected")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1) = %v", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11) = %v", got)
	}
	if got := Clamp(5, 0, -3); got != 0 {
		t.Errorf("Clamp with empty range = %v, want lower bound", got)
	}
}

func TestSpatialGridQueryFindsOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	boxes := make([]Box, 200)
	g := NewSpatialGrid(140, 140, 25)
	for i := range boxes {
		boxes[i] = randomBox(rng)
		g.Insert(boxes[i], i)
	}

	for q := 0; q < 200; q++ {
		probe := randomBox(rng)
		found := map[int]bool{}
		last := -1
		g.Query(probe, func(idx int) bool {
			if idx <= last {
				t.Fatalf("query order not ascending: %d after %d", idx, last)
			}
			last = idx
			found[idx] = true
			return false
		})
		for i, b := range boxes {
			if Overlaps(probe, b) && !found[i] {
				t.Fatalf("grid missed overlapping box %d", i)
			}
		}
	}
}

func TestSpatialGridStopsEarlyAndClears(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Box{X: 1, Y: 1, Width: 5, Height: 5}, 0)
	g.Insert(Box{X: 2, Y: 2, Width: 5, Height: 5}, 1)

	calls := 0
	g.Query(Box{X: 0, Y: 0, Width: 10, Height: 10}, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	g.Clear()
	g.Query(Box{X: 0, Y: 0, Width: 100, Height: 100}, func(int) bool {
		t.Fatal("query returned an item after Clear")
		return false
	})
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Box{X: 10, Y: -60, Width: 60, Height: 60}, 0)

	hit := false
	g.Query(Box{X: 20, Y: -5, Width: 5, Height: 10}, func(int) bool {
		hit = true
		return true
	})
	if !hit {
		t.Fatal("box above the playfield not found")
	}
}

func TestSpatialGridBoundsCellCount(t *testing.T) {
	for _, size := range []float64{3e5, 1e7, 1e12, math.Inf(1)} {
		g := NewSpatialGrid(size, size, 60)
		if n := len(g.cells); n > MaxGridCells || n != g.cols*g.rows {
			t.Fatalf("size %v: cells = %d (%dx%d)", size, n, g.cols, g.rows)
		}
	}

	g := NewSpatialGrid(3e5, 3e5, 60)
	g.Insert(Box{X: 299000, Y: 299000, Width: 60, Height: 60}, 0)
	hit := false
	g.Query(Box{X: 299010, Y: 299010, Width: 5, Height: 5}, func(int) bool {
		hit = true
		return true
	})
	if !hit {
		t.Fatal("box in a coarse grid not found")
	}
}
