package draw

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/snake/internal/game"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayTitle
	overlayGameOver
)

// Renderer draws the game to an ANSI terminal. Drawing calls only update an
// in-memory frame; Flush writes it out.
type Renderer struct {
	canvas   *Canvas
	out      *ChunkWriter
	cellSize int
	sizeFunc TermSizeFunc

	score      int
	highScore  int
	overlay    overlay
	finalScore int
	newRecord  bool

	termW, termH int
	needsClear   bool
}

// NewRenderer creates a renderer for a cols x rows board writing to w.
// sizeFunc is used to centre the board; nil keeps it in the top-left corner.
func NewRenderer(w io.Writer, cols, rows, cellSize int, sizeFunc TermSizeFunc) *Renderer {
	r := &Renderer{
		canvas:     NewCanvas(cols, rows),
		out:        NewChunkWriter(w, 0, 0),
		cellSize:   cellSize,
		sizeFunc:   sizeFunc,
		needsClear: true,
	}
	r.layout(0, 0)
	return r
}

// FrameSize returns the terminal columns and rows used by the full frame:
// HUD line, border and board.
func (r *Renderer) FrameSize() (width, height int) {
	return r.canvas.Cols() + 2, r.canvas.TerminalRows() + 3
}

// layout positions the frame centred in a termW x termH terminal.
func (r *Renderer) layout(termW, termH int) {
	fw, fh := r.FrameSize()
	originCol := max((termW-fw)/2, 0)
	originRow := max((termH-fh)/2, 0)
	r.out.SetOffset(originCol, originRow)
	r.canvas.SetOffset(originCol+1, originRow+2)
}

func (r *Renderer) DrawBoard() {
	for row := 0; row < r.canvas.Rows(); row++ {
		for col := 0; col < r.canvas.Cols(); col++ {
			color := ColorBoard
			if (col/2+row/2)%2 == 1 {
				color = ColorGrid
			}
			r.canvas.Set(col, row, color)
		}
	}
}

func (r *Renderer) DrawSnake(segments []game.Position) {
	// Body first so the head stays visible when it overlaps
	for i := len(segments) - 1; i >= 0; i-- {
		col, row := segments[i].Cell(r.cellSize)
		color := ColorBody
		if i == 0 {
			color = ColorHead
		}
		r.canvas.Set(col, row, color)
	}
}

func (r *Renderer) DrawFood(p game.Position) {
	col, row := p.Cell(r.cellSize)
	r.canvas.Set(col, row, ColorFood)
}

func (r *Renderer) UpdateScore(score int) {
	r.score = score
}

func (r *Renderer) ShowGameOver(finalScore int, newRecord bool) {
	r.overlay = overlayGameOver
	r.finalScore = finalScore
	r.newRecord = newRecord
	if newRecord {
		r.highScore = finalScore
	}
}

func (r *Renderer) HideGameOver() {
	if r.overlay == overlayGameOver {
		r.overlay = overlayNone
		r.needsClear = true
	}
}

// ShowTitle displays the start screen.
func (r *Renderer) ShowTitle(highScore int) {
	r.overlay = overlayTitle
	r.highScore = highScore
}

// HideTitle removes the start screen.
func (r *Renderer) HideTitle() {
	if r.overlay == overlayTitle {
		r.overlay = overlayNone
		r.needsClear = true
	}
}

// Flush writes the current frame.
func (r *Renderer) Flush() error {
	r.checkResize()
	if r.needsClear {
		r.out.WriteString("\033[H\033[2J")
		if err := r.canvas.RenderBorder(r.out); err != nil {
			return err
		}
		r.needsClear = false
	}

	r.drawHUD()
	if err := r.canvas.Render(r.out); err != nil {
		return err
	}

	switch r.overlay {
	case overlayTitle:
		r.drawBox([]string{
			"S N A K E",
			"",
			fmt.Sprintf("High score: %d", r.highScore),
			"",
			"Press SPACE to start",
			"WASD/arrows steer, Q quits",
		})
	case overlayGameOver:
		lines := []string{"GAME OVER", "", fmt.Sprintf("Score: %d", r.finalScore)}
		if r.newRecord {
			lines = append(lines, "NEW RECORD!")
		}
		lines = append(lines, "", "Press SPACE to play again")
		r.drawBox(lines)
	}

	return r.out.Flush()
}

// checkResize re-centres the frame when the terminal size changed.
func (r *Renderer) checkResize() {
	if r.sizeFunc == nil {
		return
	}
	w, h, err := r.sizeFunc()
	if err != nil || (w == r.termW && h == r.termH) {
		return
	}
	r.termW, r.termH = w, h
	r.layout(w, h)
	r.needsClear = true
}

func (r *Renderer) drawHUD() {
	width, _ := r.FrameSize()
	left := fmt.Sprintf("Score: %d", r.score)
	right := fmt.Sprintf("High: %d", r.highScore)
	gap := max(width-len(left)-len(right), 1)
	r.out.WriteAt(1, 1, left+strings.Repeat(" ", gap)+right)
}

// drawBox writes lines centred over the board on a padded background.
func (r *Renderer) drawBox(lines []string) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, utf8.RuneCountInString(l))
	}
	inner += 4

	width, _ := r.FrameSize()
	col := max((width-inner)/2, 0) + 1
	// Board rows start at frame row 3
	row := 3 + max((r.canvas.TerminalRows()-len(lines))/2, 0)

	for i, l := range lines {
		pad := inner - utf8.RuneCountInString(l)
		text := strings.Repeat(" ", pad/2) + l + strings.Repeat(" ", pad-pad/2)
		r.out.WriteAt(col, row+i, "\033[1;37;40m"+text+resetStyle)
	}
}
