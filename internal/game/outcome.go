package game

// Outcome is the result of a single Step. Higher values take precedence.
type Outcome int

const (
	Continue Outcome = iota
	FoodEaten
	GameOver
)

// max returns the higher-precedence outcome.
func (o Outcome) max(other Outcome) Outcome {
	if other > o {
		return other
	}
	return o
}

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case FoodEaten:
		return "food-eaten"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
