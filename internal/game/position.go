package game

// Position is a grid-aligned point in logical board units.
type Position struct {
	X, Y int
}

// Add returns p moved by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// In reports whether p lies inside a width x height board.
func (p Position) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Cell converts p to column and row indices for the given cell size.
func (p Position) Cell(cellSize int) (col, row int) {
	return p.X / cellSize, p.Y / cellSize
}
