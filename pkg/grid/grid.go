package grid

// Grid maps linear cell indexes onto a fixed-width layout. The hex
// view uses one cell per RAM byte.
type Grid struct {
	Cols  int
	CellW int
	CellH int
}

// Coords returns the column and row of a cell index.
func (g Grid) Coords(index int) (x, y int) {
	return index % g.Cols, index / g.Cols
}

// Index returns the cell index at a column and row.
func (g Grid) Index(x, y int) int {
	return y*g.Cols + x
}

// Origin returns the pixel origin of a cell index.
func (g Grid) Origin(index int) (px, py int) {
	x, y := g.Coords(index)
	return x * g.CellW, y * g.CellH
}

// Rows returns the number of rows needed for n cells.
func (g Grid) Rows(n int) int {
	return (n + g.Cols - 1) / g.Cols
}
