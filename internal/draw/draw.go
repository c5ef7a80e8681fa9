// Package draw renders the snake board to an ANSI terminal using half-block
// characters, two board cells per terminal row.
package draw

import (
	"strconv"
	"strings"
)

// Color is an index into Palette.
type Color uint8

const (
	ColorBoard Color = iota
	ColorGrid
	ColorHead
	ColorBody
	ColorFood
	ColorEye
)

// RGB is a 24-bit terminal colour.
type RGB struct {
	R, G, B uint8
}

// Palette matches the colours of the browser version of the game.
var Palette = [...]RGB{
	ColorBoard: {0xf8, 0xfa, 0xfc},
	ColorGrid:  {0xe2, 0xe8, 0xf0},
	ColorHead:  {0x05, 0x96, 0x69},
	ColorBody:  {0x10, 0xb9, 0x81},
	ColorFood:  {0xdc, 0x26, 0x26},
	ColorEye:   {0xff, 0xff, 0xff},
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

const resetStyle = "\033[0m"

// writeFg appends a truecolor foreground sequence.
func writeFg(b *strings.Builder, c Color) {
	writeRGB(b, "\033[38;2;", Palette[c])
}

// writeBg appends a truecolor background sequence.
func writeBg(b *strings.Builder, c Color) {
	writeRGB(b, "\033[48;2;", Palette[c])
}

func writeRGB(b *strings.Builder, prefix string, rgb RGB) {
	var num [3]byte
	b.WriteString(prefix)
	b.Write(strconv.AppendUint(num[:0], uint64(rgb.R), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(rgb.G), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(rgb.B), 10))
	b.WriteByte('m')
}
