package game

// Direction is the heading of the snake's head.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse heading. Invalid directions map to themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// delta returns the offset of one move of the given length.
func (d Direction) delta(step int) (dx, dy int) {
	switch d {
	case Up:
		return 0, -step
	case Down:
		return 0, step
	case Left:
		return -step, 0
	case Right:
		return step, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}
