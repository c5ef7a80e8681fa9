package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	return s
}

func rowText(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(rowText(s, y, w))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRendererDrawsBoardAndHUD(t *testing.T) {
	screen := newScreen(t, 42, 23)
	defer screen.Fini()
	r := NewRenderer(screen, 40, 40, 10)

	r.DrawBoard()
	r.DrawSnake([]game.Position{{200, 200}, {190, 200}, {180, 200}})
	r.DrawFood(game.Position{X: 0, Y: 10})
	r.UpdateScore(5)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}

	if got := rowText(screen, 0, 42); !strings.HasPrefix(got, "Score: 5") || !strings.Contains(got, "High: 0") {
		t.Errorf("HUD row = %q", got)
	}

	// Board row 20 is the top half of terminal row 10, drawn at screen row 2+10
	ch, _, style, _ := screen.GetContent(1+20, 12)
	if ch != draw.BlockUpperHalf {
		t.Fatalf("cell rune = %q", ch)
	}
	fg, _, _ := style.Decompose()
	if want := toTcell(draw.ColorHead); fg != want {
		t.Errorf("head colour = %v, want %v", fg, want)
	}

	// Food at board row 1 is the bottom half of terminal row 0
	_, _, style, _ = screen.GetContent(1, 2)
	if _, bg, _ := style.Decompose(); bg != toTcell(draw.ColorFood) {
		t.Errorf("food colour = %v", bg)
	}
}

func TestRendererOverlays(t *testing.T) {
	screen := newScreen(t, 80, 30)
	defer screen.Fini()
	r := NewRenderer(screen, 40, 40, 10)

	r.ShowTitle(3)
	r.Flush()
	if text := screenText(screen); !strings.Contains(text, "S N A K E") || !strings.Contains(text, "High score: 3") {
		t.Errorf("title missing:\n%s", text)
	}

	r.HideTitle()
	r.ShowGameOver(8, true)
	r.Flush()
	text := screenText(screen)
	for _, want := range []string{"GAME OVER", "Score: 8", "NEW RECORD!", "High: 8"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}

	r.HideGameOver()
	r.Flush()
	if strings.Contains(screenText(screen), "GAME OVER") {
		t.Error("overlay still visible")
	}
}

func TestKeysTranslatesEvents(t *testing.T) {
	screen := newScreen(t, 20, 10)
	keys := Keys(screen)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	want := []input.Key{input.KeyUp, input.KeyLeft, input.KeyStart, input.KeyQuit}
	for i, w := range want {
		select {
		case got := <-keys:
			if got != w {
				t.Errorf("key %d = %v, want %v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for key %d", i)
		}
	}

	screen.Fini()
	select {
	case _, ok := <-keys:
		if ok {
			t.Error("expected channel to close after Fini")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Fini")
	}
}
