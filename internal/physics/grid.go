package physics

import (
	"math"
	"slices"
)

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded playfield. Boxes are inserted into every cell they cover, so a
// query only has to visit the cells covered by the query box.
//
// Positions outside the playfield are clamped to the border cells; entities
// spawned above the top edge still land in the first row.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell

	// Reused between queries to deduplicate indices of boxes spanning cells.
	seen    []uint32
	stamp   uint32
	scratch []int
}

// gridCell stores the indices of boxes that touch a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// MaxGridCells bounds the cell count of a grid. Larger playfields get
// coarser cells.
const MaxGridCells = 1 << 16

// NewSpatialGrid creates a spatial grid covering the given playfield dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		cellSize = 1
	}
	if math.IsInf(width, 0) || math.IsInf(height, 0) {
		width, height = cellSize, cellSize
	}
	cols := gridSpan(width, cellSize)
	rows := gridSpan(height, cellSize)
	for cols*rows > MaxGridCells {
		cellSize *= 2
		cols = gridSpan(width, cellSize)
		rows = gridSpan(height, cellSize)
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// gridSpan returns the number of cells of size cell needed to cover length,
// between 1 and MaxGridCells.
func gridSpan(length, cell float64) int {
	n := math.Ceil(length / cell)
	if !(n >= 1) {
		return 1
	}
	return int(min(n, MaxGridCells))
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds a box identified by index to every cell it covers.
func (g *SpatialGrid) Insert(b Box, index int) {
	c0, r0, c1, r1 := g.span(b)
	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			cell := &g.cells[rowOffset+c]
			cell.items = append(cell.items, index)
		}
	}
	if index >= len(g.seen) {
		g.seen = append(g.seen, make([]uint32, index+1-len(g.seen))...)
	}
}

// Query calls fn for each inserted index whose cells intersect b, in
// ascending index order, each index at most once. If fn returns true,
// iteration stops early.
func (g *SpatialGrid) Query(b Box, fn func(index int) bool) {
	g.stamp++
	if g.stamp == 0 {
		clear(g.seen)
		g.stamp = 1
	}

	found := g.scratch[:0]
	c0, r0, c1, r1 := g.span(b)
	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			for _, idx := range g.cells[rowOffset+c].items {
				if g.seen[idx] == g.stamp {
					continue
				}
				g.seen[idx] = g.stamp
				found = append(found, idx)
			}
		}
	}
	slices.Sort(found)
	g.scratch = found

	for _, idx := range found {
		if fn(idx) {
			return
		}
	}
}

// span returns the inclusive cell range covered by b.
func (g *SpatialGrid) span(b Box) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(b.Left(), b.Top())
	c1, r1 = g.posToCell(b.Right(), b.Bottom())
	return c0, r0, c1, r1
}

// posToCell converts playfield coordinates to grid cell coordinates.
// Clamps to valid range to handle out-of-bounds positions.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
