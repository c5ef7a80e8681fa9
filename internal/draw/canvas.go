package draw

import (
	"io"
	"strconv"
	"strings"
)

// Canvas is a colour buffer of board cells. Each terminal row shows two
// cells stacked with the upper half-block character.
type Canvas struct {
	cols   int
	rows   int
	pixels []Color // [row*cols + col]

	// Terminal offset of the top-left cell (0-based columns/rows to skip)
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewCanvas creates a canvas of cols x rows board cells.
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{
		cols:   cols,
		rows:   rows,
		pixels: make([]Color, cols*rows),
	}
}

// SetOffset sets the terminal position of the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Fill sets every cell to the given colour.
func (c *Canvas) Fill(color Color) {
	for i := range c.pixels {
		c.pixels[i] = color
	}
}

// Set colours a cell. Out-of-range cells are ignored.
func (c *Canvas) Set(col, row int, color Color) {
	if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
		c.pixels[row*c.cols+col] = color
	}
}

// At returns the colour of a cell, ColorBoard when out of range.
func (c *Canvas) At(col, row int) Color {
	if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
		return c.pixels[row*c.cols+col]
	}
	return ColorBoard
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// TerminalRows returns the number of terminal rows the canvas occupies.
func (c *Canvas) TerminalRows() int { return (c.rows + 1) / 2 }

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// It stays under a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Render writes the whole canvas. Colour sequences are only emitted when
// they change along a row.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.TerminalRows() * 24)

	var num [20]byte
	for trow := 0; trow < c.TerminalRows(); trow++ {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(trow+1+c.offsetRow), 10))
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(1+c.offsetCol), 10))
		c.renderBuf.WriteByte('H')

		fg, bg := Color(255), Color(255)
		for col := 0; col < c.cols; col++ {
			top := c.At(col, trow*2)
			bottom := c.At(col, trow*2+1)
			if top != fg {
				writeFg(&c.renderBuf, top)
				fg = top
			}
			if bottom != bg {
				writeBg(&c.renderBuf, bottom)
				bg = bottom
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
		c.renderBuf.WriteString(resetStyle)
	}

	return writeChunks(w, c.renderBuf.String())
}

// RenderBorder draws a box one cell outside the canvas.
func (c *Canvas) RenderBorder(w io.Writer) error {
	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.TerminalRows() + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.cols)
	moveTo(&buf, left, top)
	buf.WriteString("┌" + line + "┐")
	for row := top + 1; row < bottom; row++ {
		moveTo(&buf, left, row)
		buf.WriteString("│")
		moveTo(&buf, right, row)
		buf.WriteString("│")
	}
	moveTo(&buf, left, bottom)
	buf.WriteString("└" + line + "┘")

	return writeChunks(w, buf.String())
}

// moveTo appends a cursor position sequence. col and row are 1-based; values
// below 1 are clamped.
func moveTo(b *strings.Builder, col, row int) {
	var num [20]byte
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(num[:0], int64(max(row, 1)), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(max(col, 1)), 10))
	b.WriteByte('H')
}

// writeChunks writes data in maxChunkSize pieces.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}
