// File: internal/layout/layout.go
// Grid placement for snapshot nodes. The layout is a pure function of the
// node count and index: a near-square grid, filled row-major in file order.
package layout

import (
	"math"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

// Cell geometry in layout units. Spacing is added on both axes between
// neighboring cells.
const (
	NodeWidth  = 220.0
	NodeHeight = 120.0
	SpacingX   = 80.0
	SpacingY   = 60.0
)

// Columns returns the grid width for n nodes: the ceiling of the square
// root, so the grid is as close to square as row-major filling allows.
func Columns(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Positions returns one coordinate per node, aligned by index with the input
// order. The caller attaches them to files in the same order it passed.
func Positions(n int) []schemas.Position {
	if n <= 0 {
		return nil
	}
	cols := Columns(n)
	positions := make([]schemas.Position, n)
	for i := range positions {
		row := i / cols
		col := i % cols
		positions[i] = schemas.Position{
			X: float64(col) * (NodeWidth + SpacingX),
			Y: float64(row) * (NodeHeight + SpacingY),
		}
	}
	return positions
}
