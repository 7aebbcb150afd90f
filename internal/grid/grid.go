// Package grid implements the uniform-cell broad phase.
//
// The grid is a cache: it is reset and refilled from body positions every
// frame and never consulted as a source of truth. Cell size should be at
// least the largest body diameter, otherwise overlapping bodies can land
// more than one cell apart and be missed by the 3x3 scan.
package grid

import (
	"math"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// SpatialGrid buckets body ids by cell.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // row-major, len cols*rows
}

// New creates a grid of ceil(width/cellSize) x ceil(height/cellSize) cells.
func New(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

func (g *SpatialGrid) Cols() int         { return g.cols }
func (g *SpatialGrid) Rows() int         { return g.rows }
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Reset empties every cell while keeping its backing array.
func (g *SpatialGrid) Reset() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// CellOf returns the column and row containing pos, clamped into the grid.
func (g *SpatialGrid) CellOf(pos dynamo.Vec2) (int, int) {
	col := int(math.Floor(pos.X / g.cellSize))
	row := int(math.Floor(pos.Y / g.cellSize))
	return clamp(col, 0, g.cols-1), clamp(row, 0, g.rows-1)
}

// Insert appends id to the cell under pos.
func (g *SpatialGrid) Insert(pos dynamo.Vec2, id int) {
	col, row := g.CellOf(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], id)
}

// Cell returns the ids stored in a cell. The slice is only valid until the
// next Reset.
func (g *SpatialGrid) Cell(col, row int) []int {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// CandidatePairs appends to dst every directed pair (id, other) of
// overlapping circles found in the 3x3 neighbourhood of id's cell. A touching
// pair is reported once from each side; callers must tolerate that.
func (g *SpatialGrid) CandidatePairs(bodies []dynamo.Body, dst []dynamo.Pair) []dynamo.Pair {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			if len(cell) == 0 {
				continue
			}
			for _, id := range cell {
				dst = g.scanNeighbours(bodies, id, col, row, dst)
			}
		}
	}
	return dst
}

func (g *SpatialGrid) scanNeighbours(bodies []dynamo.Body, id, col, row int, dst []dynamo.Pair) []dynamo.Pair {
	a := &bodies[id]
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			for _, other := range g.cells[r*g.cols+c] {
				if other == id {
					continue
				}
				if Overlaps(a, &bodies[other]) {
					dst = append(dst, dynamo.Pair{A: id, B: other})
				}
			}
		}
	}
	return dst
}

// Overlaps is the circle-circle test used to filter candidates.
func Overlaps(a, b *dynamo.Body) bool {
	dx := a.Pos.X - b.Pos.X
	dy := a.Pos.Y - b.Pos.Y
	rr := a.Radius + b.Radius
	return dx*dx+dy*dy < rr*rr
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
