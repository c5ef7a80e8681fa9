// Package input decodes terminal and browser key presses into game keys.
package input

import (
	"io"

	"github.com/tomz197/snake/internal/game"
)

// Key is a decoded key press.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyStart // space or enter: start and restart
	KeyQuit
)

// Direction returns the heading a key requests, if any.
func (k Key) Direction() (game.Direction, bool) {
	switch k {
	case KeyUp:
		return game.Up, true
	case KeyDown:
		return game.Down, true
	case KeyLeft:
		return game.Left, true
	case KeyRight:
		return game.Right, true
	default:
		return 0, false
	}
}

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyStart:
		return "start"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseKeyName maps a browser KeyboardEvent.key value to a Key.
func ParseKeyName(name string) Key {
	switch name {
	case "ArrowUp", "w", "W":
		return KeyUp
	case "ArrowDown", "s", "S":
		return KeyDown
	case "ArrowLeft", "a", "A":
		return KeyLeft
	case "ArrowRight", "d", "D":
		return KeyRight
	case " ", "Enter":
		return KeyStart
	case "q", "Q", "Escape":
		return KeyQuit
	default:
		return KeyNone
	}
}

// Decoder turns raw terminal bytes into keys. It keeps a partial escape
// sequence between calls, so input split across reads is handled.
type Decoder struct {
	pending []byte
}

// Feed decodes buf and returns the complete keys it contains.
func (d *Decoder) Feed(buf []byte) []Key {
	data := buf
	if len(d.pending) > 0 {
		data = append(d.pending, buf...)
		d.pending = nil
	}

	var keys []Key
	for i := 0; i < len(data); i++ {
		b := data[i]

		// Arrow keys: ESC [ X in normal mode, ESC O X in application mode
		if b == '\x1b' {
			if i+1 >= len(data) || (i+2 >= len(data) && (data[i+1] == '[' || data[i+1] == 'O')) {
				d.pending = append([]byte(nil), data[i:]...)
				break
			}
			if data[i+1] == '[' || data[i+1] == 'O' {
				if k := arrowKey(data[i+2]); k != KeyNone {
					keys = append(keys, k)
				}
				i += 2
			}
			continue
		}

		if k := byteKey(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

// Decode decodes a complete buffer without keeping state.
func Decode(buf []byte) []Key {
	var d Decoder
	return d.Feed(buf)
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyNone
	}
}

func byteKey(b byte) Key {
	switch b {
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case ' ', '\n', '\r':
		return KeyStart
	case 'q', 'Q', '\x03':
		return KeyQuit
	default:
		return KeyNone
	}
}

// Stream delivers decoded keys from a reader via a channel.
type Stream struct {
	ch chan Key
}

// StartStream spawns a goroutine that reads from r until it fails and
// publishes decoded keys. The channel is closed when r is exhausted.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan Key, 64)}
	go func() {
		defer close(s.ch)
		var dec Decoder
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			for _, k := range dec.Feed(buf[:n]) {
				s.ch <- k
			}
			if err != nil {
				return
			}
		}
	}()
	return s
}

// Keys returns the channel of decoded keys.
func (s *Stream) Keys() <-chan Key {
	return s.ch
}
