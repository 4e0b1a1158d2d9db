package panel

import (
	"fmt"
	"math"
)

// Grid is a rows x cols arrangement of panel cells.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int { return g.Rows * g.Cols }

// Cell returns the row and column of the i-th cell in row-major order.
func (g Grid) Cell(i int) (row, col int) { return i / g.Cols, i % g.Cols }

func (g Grid) String() string { return fmt.Sprintf("%dx%d", g.Rows, g.Cols) }

// smallLayouts follows manuscript conventions rather than minimal area:
// up to three panels sit in one row.
var smallLayouts = [...]Grid{
	1: {1, 1},
	2: {1, 2},
	3: {1, 3},
	4: {2, 2},
	5: {2, 3},
	6: {2, 3},
	7: {3, 3},
	8: {3, 3},
	9: {3, 3},
}

// Layout returns the grid for n panels. Counts up to 9 use a fixed table;
// larger counts use cols = ceil(sqrt(n)), rows = ceil(n / cols).
//
// Layout panics if n < 1; callers must handle the empty case first.
func Layout(n int) Grid {
	if n < 1 {
		panic(fmt.Sprintf("panel: layout of %d panels", n))
	}
	if n < len(smallLayouts) {
		return smallLayouts[n]
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	return Grid{Rows: rows, Cols: cols}
}
