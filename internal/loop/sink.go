package loop

import (
	"context"

	"github.com/tomz197/snake/internal/game"
)

// RenderSink receives drawing commands from the loop. It is output only;
// the loop never reads anything back.
type RenderSink interface {
	DrawBoard()
	DrawSnake(segments []game.Position)
	DrawFood(p game.Position)
	UpdateScore(score int)
	ShowGameOver(finalScore int, newRecord bool)
	HideGameOver()
}

// Flusher is implemented by sinks that batch output. Flush is called once at
// the end of every tick.
type Flusher interface {
	Flush() error
}

// Store persists the high score in a single named slot.
type Store interface {
	// Load returns the stored high score, 0 when nothing is stored.
	Load(ctx context.Context) (int, error)
	// Save records score as the new high score.
	Save(ctx context.Context, score int) error
}
