package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/session"
	"github.com/tomz197/snake/internal/store"
	"github.com/tomz197/snake/internal/tui"
	"golang.org/x/term"
)

const highScoreFileName = ".snake_highscore.json"

func main() {
	// The terminal is the game screen, so logs only go to LOG_FILE.
	logClose, err := config.ConfigureLogging(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	tick := config.GetEnvDuration("SNAKE_TICK", config.TickInterval)
	path := config.GetEnv("SNAKE_HIGHSCORE_FILE", defaultHighScorePath())
	dsn := config.GetEnv("SNAKE_DB_DSN", "")

	st, err := store.Open(ctx, dsn, path, config.HighScoreSlot)
	if err != nil {
		return fmt.Errorf("open high score store: %w", err)
	}
	defer st.Close()

	switch r := config.GetEnv("SNAKE_RENDERER", "ansi"); r {
	case "tcell":
		return runTcell(ctx, st, tick)
	case "ansi":
		return runANSI(ctx, st, tick)
	default:
		return fmt.Errorf("unknown renderer %q", r)
	}
}

func runANSI(ctx context.Context, st loop.Store, tick time.Duration) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.HideCursor(os.Stdout)
	defer func() {
		draw.ClearScreen(os.Stdout)
		draw.ShowCursor(os.Stdout)
	}()

	r := draw.NewRenderer(os.Stdout, config.BoardWidth/config.CellSize, config.BoardHeight/config.CellSize,
		config.CellSize, draw.DefaultTermSizeFunc)
	keys := input.StartStream(os.Stdin).Keys()
	return play(ctx, r, keys, st, tick)
}

func runTcell(ctx context.Context, st loop.Store, tick time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	r := tui.NewRenderer(screen, config.BoardWidth/config.CellSize, config.BoardHeight/config.CellSize, config.CellSize)
	return play(ctx, r, tui.Keys(screen), st, tick)
}

func play(ctx context.Context, sink session.Sink, keys <-chan input.Key, st loop.Store, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var flushErr error
	state := game.New(config.BoardWidth, config.BoardHeight, config.CellSize)
	l := loop.New(state, sink, st, loop.TickerScheduler{},
		loop.WithContext(ctx),
		loop.WithErrorHandler(func(err error) {
			flushErr = err
			cancel()
		}),
	)

	sess := session.New(l, sink, keys, session.WithInterval(tick))
	err := sess.Run(ctx)
	l.Stop()
	if err != nil {
		return err
	}
	if flushErr != nil {
		return fmt.Errorf("render: %w", flushErr)
	}
	log.Info("game finished", "score", l.Snapshot().Score, "high_score", l.HighScore())
	return nil
}

func defaultHighScorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return highScoreFileName
	}
	return filepath.Join(home, highScoreFileName)
}
