package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/snake/internal/input"
)

// Keys polls screen events and publishes game keys. The channel closes when
// the screen is finalised.
func Keys(screen tcell.Screen) <-chan input.Key {
	ch := make(chan input.Key, 16)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if k := translate(ev); k != input.KeyNone {
					ch <- k
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()
	return ch
}

func translate(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		return input.ParseKeyName(string(ev.Rune()))
	default:
		return input.KeyNone
	}
}
