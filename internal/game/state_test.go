package game

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return New(400, 400, 10, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func onSnake(segments []Position, p Position) bool {
	return slices.Contains(segments, p)
}

func TestNewInitialConfiguration(t *testing.T) {
	s := newTestState(t)
	snap := s.Snapshot()

	want := []Position{{200, 200}, {190, 200}, {180, 200}}
	if !slices.Equal(snap.Segments, want) {
		t.Fatalf("segments = %v, want %v", snap.Segments, want)
	}
	if snap.Direction != Right {
		t.Errorf("direction = %v, want right", snap.Direction)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if !snap.Running {
		t.Error("expected running state")
	}
	if onSnake(snap.Segments, snap.Food) {
		t.Errorf("food %v placed on snake", snap.Food)
	}
	if snap.Food.X%10 != 0 || snap.Food.Y%10 != 0 || !snap.Food.In(400, 400) {
		t.Errorf("food %v not a grid cell inside the board", snap.Food)
	}
}

func TestStepMovesOneCell(t *testing.T) {
	s := newTestState(t)
	s.food = Position{0, 0}

	if got := s.Step(); got != Continue {
		t.Fatalf("Step() = %v, want continue", got)
	}
	want := []Position{{210, 200}, {200, 200}, {190, 200}}
	if got := s.Snapshot().Segments; !slices.Equal(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

func TestSetDirection(t *testing.T) {
	tests := []struct {
		name    string
		current Direction
		request Direction
		want    Direction
		ok      bool
	}{
		{"reverse right", Right, Left, Right, false},
		{"reverse left", Left, Right, Left, false},
		{"reverse up", Up, Down, Up, false},
		{"reverse down", Down, Up, Down, false},
		{"turn up", Right, Up, Up, true},
		{"turn down", Left, Down, Down, true},
		{"same heading", Up, Up, Up, true},
		{"invalid", Right, Direction(9), Right, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.direction = tt.current
			if ok := s.SetDirection(tt.request); ok != tt.ok {
				t.Errorf("SetDirection(%v) = %v, want %v", tt.request, ok, tt.ok)
			}
			if s.Direction() != tt.want {
				t.Errorf("direction = %v, want %v", s.Direction(), tt.want)
			}
		})
	}
}

func TestSetDirectionIgnoredAfterGameOver(t *testing.T) {
	s := newTestState(t)
	s.running = false
	if s.SetDirection(Up) {
		t.Error("SetDirection accepted while not running")
	}
	if s.Direction() != Right {
		t.Errorf("direction = %v, want right", s.Direction())
	}
}

func TestStepNotRunningIsNoop(t *testing.T) {
	s := newTestState(t)
	s.running = false
	before := s.Snapshot()

	if got := s.Step(); got != Continue {
		t.Fatalf("Step() = %v, want continue", got)
	}
	after := s.Snapshot()
	if !slices.Equal(before.Segments, after.Segments) || before.Food != after.Food || before.Score != after.Score {
		t.Errorf("state changed: before %+v, after %+v", before, after)
	}
}

func TestStepEatsFood(t *testing.T) {
	s := newTestState(t)
	s.food = Position{210, 200}

	if got := s.Step(); got != FoodEaten {
		t.Fatalf("Step() = %v, want food-eaten", got)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	snap := s.Snapshot()
	want := []Position{{210, 200}, {200, 200}, {190, 200}, {190, 200}}
	if !slices.Equal(snap.Segments, want) {
		t.Errorf("segments = %v, want %v", snap.Segments, want)
	}
	if onSnake(snap.Segments, snap.Food) {
		t.Errorf("food relocated onto snake at %v", snap.Food)
	}
	if !snap.Running {
		t.Error("eating should not end the game")
	}
}

func TestStepWallCollision(t *testing.T) {
	tests := []struct {
		name      string
		snake     []Position
		direction Direction
	}{
		{"left wall", []Position{{0, 200}, {10, 200}, {20, 200}}, Left},
		{"right wall", []Position{{390, 200}, {380, 200}, {370, 200}}, Right},
		{"top wall", []Position{{200, 0}, {200, 10}, {200, 20}}, Up},
		{"bottom wall", []Position{{200, 390}, {200, 380}, {200, 370}}, Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.snake = slices.Clone(tt.snake)
			s.direction = tt.direction
			s.food = Position{100, 100}

			if got := s.Step(); got != GameOver {
				t.Fatalf("Step() = %v, want game-over", got)
			}
			if s.Running() {
				t.Error("expected game to stop")
			}
		})
	}
}

func TestStepSelfCollisionOnExactTick(t *testing.T) {
	s := newTestState(t)
	s.snake = []Position{{100, 100}, {90, 100}, {80, 100}, {70, 100}, {60, 100}}
	s.food = Position{390, 390}

	turns := []Direction{Down, Left, Up}
	want := []Outcome{Continue, Continue, GameOver}
	for i, d := range turns {
		if !s.SetDirection(d) {
			t.Fatalf("turn %d: SetDirection(%v) rejected", i, d)
		}
		if got := s.Step(); got != want[i] {
			t.Fatalf("turn %d: Step() = %v, want %v", i, got, want[i])
		}
	}
	if s.Head() != (Position{90, 100}) {
		t.Errorf("head = %v, want {90 100}", s.Head())
	}
}

func TestStepGameOverTakesPrecedenceOverFood(t *testing.T) {
	s := newTestState(t)
	s.snake = []Position{{100, 100}, {90, 100}, {80, 100}, {70, 100}, {60, 100}}
	s.food = Position{390, 390}

	s.SetDirection(Down)
	s.Step()
	s.SetDirection(Left)
	s.Step()
	s.SetDirection(Up)
	s.food = Position{90, 100}

	if got := s.Step(); got != GameOver {
		t.Fatalf("Step() = %v, want game-over", got)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1 (food still counts)", s.Score())
	}
	if s.Len() != 6 {
		t.Errorf("len = %d, want 6", s.Len())
	}
}

func TestResetAfterGameOver(t *testing.T) {
	s := newTestState(t)
	s.score = 7
	s.snake = []Position{{0, 200}, {10, 200}, {20, 200}, {30, 200}}
	s.direction = Left
	s.food = Position{100, 100}
	if s.Step() != GameOver {
		t.Fatal("expected game over")
	}

	ptr := s
	s.Reset()
	if ptr != s {
		t.Fatal("reset changed identity")
	}
	snap := s.Snapshot()
	want := []Position{{200, 200}, {190, 200}, {180, 200}}
	if !slices.Equal(snap.Segments, want) {
		t.Errorf("segments = %v, want %v", snap.Segments, want)
	}
	if snap.Score != 0 || !snap.Running || snap.Direction != Right {
		t.Errorf("reset state = %+v", snap)
	}
	if onSnake(snap.Segments, snap.Food) || !snap.Food.In(400, 400) {
		t.Errorf("invalid food placement %v", snap.Food)
	}
}

func TestPlaceFoodFallsBackToFreeCell(t *testing.T) {
	s := New(40, 10, 10, WithRand(rand.New(rand.NewPCG(3, 4))))
	if got := s.Snapshot().Segments; !slices.Equal(got, []Position{{20, 0}, {10, 0}, {0, 0}}) {
		t.Fatalf("segments = %v", got)
	}
	for i := 0; i < 20; i++ {
		s.placeFood()
		if s.Food() != (Position{30, 0}) {
			t.Fatalf("food = %v, want only free cell {30 0}", s.Food())
		}
	}
}

func TestPlaceFoodFullBoardKeepsFood(t *testing.T) {
	s := New(40, 10, 10, WithRand(rand.New(rand.NewPCG(5, 6))))
	s.snake = []Position{{30, 0}, {20, 0}, {10, 0}, {0, 0}}
	s.food = Position{30, 0}

	s.placeFood()
	if s.Food() != (Position{30, 0}) {
		t.Errorf("food = %v, want unchanged", s.Food())
	}
}

// TestRandomPlayInvariants drives the game with random turns and checks the
// length and food invariants after every step.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	s := New(100, 100, 10, WithRand(rand.New(rand.NewPCG(7, 8))))
	dirs := []Direction{Up, Down, Left, Right}

	games := 0
	for i := 0; i < 5000; i++ {
		s.SetDirection(dirs[rng.IntN(len(dirs))])
		before := s.Len()

		outcome := s.Step()
		switch {
		case outcome == FoodEaten || (outcome == GameOver && s.Len() == before+1):
			if s.Len() != before+1 {
				t.Fatalf("step %d: len %d -> %d on food", i, before, s.Len())
			}
		default:
			if s.Len() != before {
				t.Fatalf("step %d: len %d -> %d without food", i, before, s.Len())
			}
		}
		if outcome == FoodEaten && onSnake(s.Snapshot().Segments, s.Food()) {
			t.Fatalf("step %d: food %v on snake", i, s.Food())
		}
		if outcome == GameOver {
			games++
			s.Reset()
			if s.Len() != InitialLength {
				t.Fatalf("reset len = %d", s.Len())
			}
		}
	}
	if games == 0 {
		t.Error("expected at least one game over in random play")
	}
}
