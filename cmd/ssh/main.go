package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/session"
	"github.com/tomz197/snake/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoreFile   = "/app/data/highscore.json"
)

func main() {
	logClose, err := config.ConfigureLogging(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	tick := config.GetEnvDuration("SNAKE_TICK", config.TickInterval)
	log.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "tick", tick)

	st, err := store.Open(context.Background(),
		config.GetEnv("SNAKE_DB_DSN", ""),
		config.GetEnv("SNAKE_HIGHSCORE_FILE", defaultScoreFile),
		config.HighScoreSlot)
	if err != nil {
		log.Fatal("failed to open high score store", "err", err)
	}
	defer st.Close()

	g := &gameHandler{store: st, tick: tick}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("Shutting down server...", "sessions", g.active.Load())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}

// gameHandler runs one game per SSH session. All sessions share the high
// score store.
type gameHandler struct {
	store  loop.Store
	tick   time.Duration
	active atomic.Int64
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := log.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		g.active.Add(1)
		defer g.active.Add(-1)
		if err := g.play(sess, sizeTracker.getSize, logger); err != nil {
			logger.Info("session ended", "err", err)
		} else {
			logger.Info("session ended")
		}
		next(sess)
	}
}

func (g *gameHandler) play(sess ssh.Session, size draw.TermSizeFunc, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	draw.HideCursor(sess)
	defer func() {
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)
	}()

	r := draw.NewRenderer(sess, config.BoardWidth/config.CellSize, config.BoardHeight/config.CellSize,
		config.CellSize, size)
	state := game.New(config.BoardWidth, config.BoardHeight, config.CellSize)
	l := loop.New(state, r, g.store, loop.TickerScheduler{},
		loop.WithContext(ctx),
		loop.WithLogger(logger),
		loop.WithErrorHandler(func(err error) {
			logger.Debug("frame write failed", "err", err)
			cancel()
		}),
		loop.WithOutcomeHook(func(o game.Outcome, snap game.Snapshot) {
			if o == game.GameOver {
				logger.Info("game over", "score", snap.Score, "length", len(snap.Segments))
			}
		}),
	)

	keys := input.StartStream(sess).Keys()
	return session.New(l, r, keys,
		session.WithInterval(g.tick),
		session.WithIdleTimeout(config.IdleDisconnect),
		session.WithLogger(logger),
	).Run(ctx)
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
