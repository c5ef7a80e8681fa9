package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tomz197/snake/internal/game"
)

const writeWait = 2 * time.Second

// conn is the subset of *websocket.Conn used for writing frames.
type conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v any) error
}

var _ conn = (*websocket.Conn)(nil)

// wsSink accumulates drawing calls into a Frame and sends it on Flush.
type wsSink struct {
	mu    sync.Mutex
	conn  conn
	frame Frame
}

func newSink(c conn, width, height, cellSize int) *wsSink {
	return &wsSink{
		conn: c,
		frame: Frame{
			Type:     TypeFrame,
			Width:    width,
			Height:   height,
			CellSize: cellSize,
			Snake:    []Point{},
		},
	}
}

func (s *wsSink) DrawBoard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Snake = s.frame.Snake[:0]
	s.frame.Food = nil
}

func (s *wsSink) DrawSnake(segments []game.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range segments {
		s.frame.Snake = append(s.frame.Snake, toPoint(p))
	}
}

func (s *wsSink) DrawFood(p game.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	food := toPoint(p)
	s.frame.Food = &food
}

func (s *wsSink) UpdateScore(score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Score = score
}

func (s *wsSink) ShowGameOver(finalScore int, newRecord bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Overlay = OverlayGameOver
	s.frame.FinalScore = finalScore
	s.frame.NewRecord = newRecord
	if newRecord {
		s.frame.HighScore = finalScore
	}
}

func (s *wsSink) HideGameOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame.Overlay == OverlayGameOver {
		s.clearOverlay()
	}
}

func (s *wsSink) ShowTitle(highScore int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Overlay = OverlayTitle
	s.frame.HighScore = highScore
}

func (s *wsSink) HideTitle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame.Overlay == OverlayTitle {
		s.clearOverlay()
	}
}

func (s *wsSink) clearOverlay() {
	s.frame.Overlay = OverlayNone
	s.frame.FinalScore = 0
	s.frame.NewRecord = false
}

// Flush sends the current frame.
func (s *wsSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(s.frame)
}
