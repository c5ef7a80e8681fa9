// Package game holds the snake game state and its per-tick transition rules.
package game

import (
	"math/rand/v2"
	"time"
)

// InitialLength is the number of segments of a fresh snake.
const InitialLength = 3

// State is the authoritative game data for one session.
// It is created once and reset in place between rounds.
type State struct {
	width    int
	height   int
	cellSize int
	rng      *rand.Rand

	snake     []Position // head at index 0
	food      Position
	score     int
	direction Direction
	running   bool
}

// Option configures a State.
type Option func(*State)

// WithRand sets the random source used for food placement.
func WithRand(r *rand.Rand) Option {
	return func(s *State) {
		s.rng = r
	}
}

// New creates a running game on a boardWidth x boardHeight board.
func New(boardWidth, boardHeight, cellSize int, opts ...Option) *State {
	if cellSize <= 0 {
		cellSize = 1
	}
	s := &State{
		width:    boardWidth,
		height:   boardHeight,
		cellSize: cellSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	s.Reset()
	return s
}

// Reset restores the initial configuration without reallocating the State.
func (s *State) Reset() {
	head := Position{
		X: (s.width / 2) / s.cellSize * s.cellSize,
		Y: (s.height / 2) / s.cellSize * s.cellSize,
	}
	s.snake = s.snake[:0]
	for i := 0; i < InitialLength; i++ {
		s.snake = append(s.snake, head.Add(-i*s.cellSize, 0))
	}
	s.score = 0
	s.direction = Right
	s.running = true
	s.placeFood()
}

// SetDirection changes the heading. Reversals, invalid values and requests
// made after the game ended are rejected.
func (s *State) SetDirection(d Direction) bool {
	if !s.running || !d.Valid() || d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Step advances the game by one tick.
func (s *State) Step() Outcome {
	if !s.running {
		return Continue
	}

	for i := len(s.snake) - 1; i > 0; i-- {
		s.snake[i] = s.snake[i-1]
	}
	dx, dy := s.direction.delta(s.cellSize)
	s.snake[0] = s.snake[0].Add(dx, dy)
	head := s.snake[0]

	outcome := Continue

	// Eating is applied before the collision checks, so a fatal move onto
	// food still counts toward the score.
	if head == s.food {
		s.score++
		s.snake = append(s.snake, s.snake[len(s.snake)-1])
		s.placeFood()
		outcome = outcome.max(FoodEaten)
	}

	if !head.In(s.width, s.height) {
		s.running = false
		return outcome.max(GameOver)
	}
	for _, seg := range s.snake[1:] {
		if seg == head {
			s.running = false
			return outcome.max(GameOver)
		}
	}
	return outcome
}

// Snapshot returns a copy of the current state that is safe to retain.
func (s *State) Snapshot() Snapshot {
	segments := make([]Position, len(s.snake))
	copy(segments, s.snake)
	return Snapshot{
		Segments:  segments,
		Food:      s.food,
		Score:     s.score,
		Direction: s.direction,
		Running:   s.running,
		Width:     s.width,
		Height:    s.height,
		CellSize:  s.cellSize,
	}
}

func (s *State) Score() int           { return s.score }
func (s *State) Running() bool        { return s.running }
func (s *State) Direction() Direction { return s.direction }
func (s *State) Food() Position       { return s.food }
func (s *State) Head() Position       { return s.snake[0] }
func (s *State) Len() int             { return len(s.snake) }

func (s *State) cols() int { return s.width / s.cellSize }
func (s *State) rows() int { return s.height / s.cellSize }
