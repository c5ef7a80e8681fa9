package game

// maxPlacementAttempts bounds rejection sampling before the exhaustive scan.
const maxPlacementAttempts = 128

// placeFood moves the food to a random free cell.
// Rejection sampling is tried first. Once it keeps hitting the body the free
// cells are enumerated and one is picked uniformly. A full board leaves the
// food where it is.
func (s *State) placeFood() {
	cols, rows := s.cols(), s.rows()
	if cols <= 0 || rows <= 0 {
		return
	}

	for i := 0; i < maxPlacementAttempts; i++ {
		p := Position{
			X: s.rng.IntN(cols) * s.cellSize,
			Y: s.rng.IntN(rows) * s.cellSize,
		}
		if !s.occupies(p) {
			s.food = p
			return
		}
	}

	occupied := make(map[Position]struct{}, len(s.snake))
	for _, seg := range s.snake {
		occupied[seg] = struct{}{}
	}
	free := make([]Position, 0, max(cols*rows-len(occupied), 0))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := Position{X: col * s.cellSize, Y: row * s.cellSize}
			if _, ok := occupied[p]; !ok {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return
	}
	s.food = free[s.rng.IntN(len(free))]
}

// occupies reports whether any snake segment sits on p.
func (s *State) occupies(p Position) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}
