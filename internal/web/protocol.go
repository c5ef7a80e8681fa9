package web

import "github.com/tomz197/snake/internal/game"

// Message types sent to the browser.
const (
	TypeFrame = "frame"
)

// Overlay kinds.
const (
	OverlayNone     = ""
	OverlayTitle    = "title"
	OverlayGameOver = "gameover"
)

// Point is a board position on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPoint(p game.Position) Point {
	return Point{X: p.X, Y: p.Y}
}

// Frame is one rendered tick.
type Frame struct {
	Type       string  `json:"type"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	CellSize   int     `json:"cellSize"`
	Snake      []Point `json:"snake"`
	Food       *Point  `json:"food,omitempty"`
	Score      int     `json:"score"`
	HighScore  int     `json:"highScore"`
	Overlay    string  `json:"overlay,omitempty"`
	FinalScore int     `json:"finalScore,omitempty"`
	NewRecord  bool    `json:"newRecord,omitempty"`
}

// KeyMessage is sent by the browser on keydown. Key holds KeyboardEvent.key.
type KeyMessage struct {
	Key string `json:"key"`
}

// HighScoreResponse is returned by GET /api/highscore.
type HighScoreResponse struct {
	HighScore int `json:"highScore"`
}
