package game

// Snapshot is a read-only view of a State handed to renderers.
type Snapshot struct {
	Segments  []Position
	Food      Position
	Score     int
	Direction Direction
	Running   bool
	Width     int
	Height    int
	CellSize  int
}

// Cols returns the board width in cells.
func (s Snapshot) Cols() int {
	if s.CellSize <= 0 {
		return 0
	}
	return s.Width / s.CellSize
}

// Rows returns the board height in cells.
func (s Snapshot) Rows() int {
	if s.CellSize <= 0 {
		return 0
	}
	return s.Height / s.CellSize
}
