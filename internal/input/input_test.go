package input

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"wasd lower", "wasd", []Key{KeyUp, KeyLeft, KeyDown, KeyRight}},
		{"wasd upper", "WASD", []Key{KeyUp, KeyLeft, KeyDown, KeyRight}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{"application arrows", "\x1bOA\x1bOD", []Key{KeyUp, KeyLeft}},
		{"start keys", " \r\n", []Key{KeyStart, KeyStart, KeyStart}},
		{"quit keys", "qQ\x03", []Key{KeyQuit, KeyQuit, KeyQuit}},
		{"unknown bytes", "xyz1", nil},
		{"unknown csi", "\x1b[Zw", []Key{KeyUp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode([]byte(tt.in)); !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecoderSplitEscapeSequence(t *testing.T) {
	var d Decoder
	if got := d.Feed([]byte("d\x1b")); !slices.Equal(got, []Key{KeyRight}) {
		t.Fatalf("first feed = %v", got)
	}
	if got := d.Feed([]byte("[")); len(got) != 0 {
		t.Fatalf("second feed = %v, want none", got)
	}
	if got := d.Feed([]byte("Aw")); !slices.Equal(got, []Key{KeyUp, KeyUp}) {
		t.Fatalf("third feed = %v", got)
	}
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		key  Key
		want game.Direction
		ok   bool
	}{
		{KeyUp, game.Up, true},
		{KeyDown, game.Down, true},
		{KeyLeft, game.Left, true},
		{KeyRight, game.Right, true},
		{KeyStart, 0, false},
		{KeyQuit, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.key.Direction()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%v.Direction() = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseKeyName(t *testing.T) {
	names := map[string]Key{
		"ArrowUp": KeyUp, "w": KeyUp, "W": KeyUp,
		"ArrowDown": KeyDown, "s": KeyDown, "S": KeyDown,
		"ArrowLeft": KeyLeft, "a": KeyLeft, "A": KeyLeft,
		"ArrowRight": KeyRight, "d": KeyRight, "D": KeyRight,
		" ": KeyStart, "Enter": KeyStart,
		"Escape": KeyQuit, "Shift": KeyNone,
	}
	for name, want := range names {
		if got := ParseKeyName(name); got != want {
			t.Errorf("ParseKeyName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(strings.NewReader("w\x1b[Bq"))

	var got []Key
	timeout := time.After(time.Second)
	for {
		select {
		case k, ok := <-s.Keys():
			if !ok {
				want := []Key{KeyUp, KeyDown, KeyQuit}
				if !slices.Equal(got, want) {
					t.Errorf("keys = %v, want %v", got, want)
				}
				return
			}
			got = append(got, k)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}
