// Package session runs one player's game: the title screen, the start and
// restart controls, and key routing into the loop.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
)

// ErrIdle is returned by Run when no key arrived within the idle timeout.
var ErrIdle = errors.New("session idle timeout")

// Sink is a render sink that can also show the start screen.
type Sink interface {
	loop.RenderSink
	ShowTitle(highScore int)
	HideTitle()
}

// Phase is the current screen of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // Title screen
	PhasePlaying               // Loop running
	PhaseGameOver              // Waiting for restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Session connects a key source to a loop.
type Session struct {
	loop     *loop.Loop
	sink     Sink
	keys     <-chan input.Key
	interval time.Duration
	idle     time.Duration
	logger   *log.Logger
	phase    Phase
}

// Option configures a Session.
type Option func(*Session)

// WithInterval sets the tick interval passed to the loop.
func WithInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// WithIdleTimeout ends the session when no key arrives for d.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Session) { s.idle = d }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates a session in the idle phase.
func New(l *loop.Loop, sink Sink, keys <-chan input.Key, opts ...Option) *Session {
	s := &Session{
		loop: l,
		sink: sink,
		keys: keys,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	if s.phase == PhasePlaying && !s.loop.Running() {
		return PhaseGameOver
	}
	return s.phase
}

// Run shows the title screen and handles keys until the player quits, the
// key source closes, ctx is cancelled or the idle timeout fires.
func (s *Session) Run(ctx context.Context) error {
	defer s.loop.Stop()

	s.sink.DrawBoard()
	s.sink.ShowTitle(s.loop.HighScore())
	if err := s.flush(); err != nil {
		return err
	}

	var idle <-chan time.Time
	var timer *time.Timer
	if s.idle > 0 {
		timer = time.NewTimer(s.idle)
		defer timer.Stop()
		idle = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-idle:
			s.logger.Info("session idle, closing", "timeout", s.idle)
			return ErrIdle
		case k, ok := <-s.keys:
			if !ok {
				return nil
			}
			if timer != nil {
				timer.Reset(s.idle)
			}
			if k == input.KeyQuit {
				s.logger.Debug("player quit", "phase", s.Phase())
				return nil
			}
			if err := s.HandleKey(k); err != nil {
				return err
			}
		}
	}
}

// HandleKey applies one key press.
func (s *Session) HandleKey(k input.Key) error {
	if d, ok := k.Direction(); ok {
		if s.loop.Running() {
			s.loop.SetDirection(d)
		}
		return nil
	}
	if k != input.KeyStart {
		return nil
	}

	switch s.Phase() {
	case PhaseIdle:
		s.sink.HideTitle()
		s.loop.Start(s.interval)
		s.phase = PhasePlaying
		s.logger.Info("game started")
	case PhaseGameOver:
		snap := s.loop.Snapshot()
		s.logger.Info("game restarted", "previous_score", snap.Score, "high_score", s.loop.HighScore())
		s.loop.Restart(s.interval)
		s.phase = PhasePlaying
	}
	return nil
}

func (s *Session) flush() error {
	if f, ok := s.sink.(loop.Flusher); ok {
		return f.Flush()
	}
	return nil
}
