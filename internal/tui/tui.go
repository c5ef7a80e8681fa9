// Package tui is a tcell frontend: a render sink drawing the board with
// half-block cells and a key pump feeding the session.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
)

// Renderer draws the game on a tcell screen.
type Renderer struct {
	screen   tcell.Screen
	cols     int
	rows     int
	cellSize int
	cells    []draw.Color

	score     int
	highScore int
	lines     []string // overlay text, nil when hidden
	title     bool
}

// NewRenderer creates a renderer for a cols x rows board.
func NewRenderer(screen tcell.Screen, cols, rows, cellSize int) *Renderer {
	return &Renderer{
		screen:   screen,
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]draw.Color, cols*rows),
	}
}

func (r *Renderer) set(col, row int, c draw.Color) {
	if col >= 0 && col < r.cols && row >= 0 && row < r.rows {
		r.cells[row*r.cols+col] = c
	}
}

func (r *Renderer) at(col, row int) draw.Color {
	if col >= 0 && col < r.cols && row >= 0 && row < r.rows {
		return r.cells[row*r.cols+col]
	}
	return draw.ColorBoard
}

func (r *Renderer) DrawBoard() {
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			c := draw.ColorBoard
			if (col/2+row/2)%2 == 1 {
				c = draw.ColorGrid
			}
			r.set(col, row, c)
		}
	}
}

func (r *Renderer) DrawSnake(segments []game.Position) {
	for i := len(segments) - 1; i >= 0; i-- {
		col, row := segments[i].Cell(r.cellSize)
		c := draw.ColorBody
		if i == 0 {
			c = draw.ColorHead
		}
		r.set(col, row, c)
	}
}

func (r *Renderer) DrawFood(p game.Position) {
	col, row := p.Cell(r.cellSize)
	r.set(col, row, draw.ColorFood)
}

func (r *Renderer) UpdateScore(score int) { r.score = score }

func (r *Renderer) ShowGameOver(finalScore int, newRecord bool) {
	r.lines = []string{"GAME OVER", fmt.Sprintf("Score: %d", finalScore)}
	if newRecord {
		r.highScore = finalScore
		r.lines = append(r.lines, "NEW RECORD!")
	}
	r.lines = append(r.lines, "SPACE to play again")
	r.title = false
}

func (r *Renderer) HideGameOver() {
	if !r.title {
		r.lines = nil
	}
}

// ShowTitle displays the start screen.
func (r *Renderer) ShowTitle(highScore int) {
	r.highScore = highScore
	r.title = true
	r.lines = []string{"S N A K E", fmt.Sprintf("High score: %d", highScore), "SPACE to start", "Q to quit"}
}

// HideTitle removes the start screen.
func (r *Renderer) HideTitle() {
	if r.title {
		r.title = false
		r.lines = nil
	}
}

// Flush draws the buffered frame and shows it.
func (r *Renderer) Flush() error {
	r.screen.Clear()
	sw, sh := r.screen.Size()
	fw, fh := r.cols+2, (r.rows+1)/2+3
	x0 := max((sw-fw)/2, 0)
	y0 := max((sh-fh)/2, 0)

	hud := tcell.StyleDefault.Bold(true)
	r.text(x0, y0, fmt.Sprintf("Score: %d", r.score), hud)
	high := fmt.Sprintf("High: %d", r.highScore)
	r.text(x0+fw-len(high), y0, high, hud)

	r.border(x0, y0+1, fw, (r.rows+1)/2+2)

	for trow := 0; trow < (r.rows+1)/2; trow++ {
		for col := 0; col < r.cols; col++ {
			style := tcell.StyleDefault.
				Foreground(toTcell(r.at(col, trow*2))).
				Background(toTcell(r.at(col, trow*2+1)))
			r.screen.SetContent(x0+1+col, y0+2+trow, draw.BlockUpperHalf, nil, style)
		}
	}

	if len(r.lines) > 0 {
		box := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
		width := 0
		for _, l := range r.lines {
			width = max(width, len(l))
		}
		width += 4
		bx := x0 + max((fw-width)/2, 0)
		by := y0 + 2 + max(((r.rows+1)/2-len(r.lines))/2, 0)
		for i, l := range r.lines {
			pad := width - len(l)
			r.text(bx, by+i, fmt.Sprintf("%*s%s%*s", pad/2, "", l, pad-pad/2, ""), box)
		}
	}

	r.screen.Show()
	return nil
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) border(x, y, w, h int) {
	style := tcell.StyleDefault
	for i := 1; i < w-1; i++ {
		r.screen.SetContent(x+i, y, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x+i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := 1; j < h-1; j++ {
		r.screen.SetContent(x, y+j, tcell.RuneVLine, nil, style)
		r.screen.SetContent(x+w-1, y+j, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}

func toTcell(c draw.Color) tcell.Color {
	rgb := draw.Palette[c]
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}
