// Package loop drives a game.State at a fixed cadence and fans the outcome of
// every tick out to a render sink and a high-score store.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
)

// storeTimeout bounds each high-score load or save.
const storeTimeout = 3 * time.Second

// Loop owns the tick schedule of one game session.
// Ticks and direction changes are serialised, so a tick always runs to
// completion before the next input or tick is applied.
type Loop struct {
	mu        sync.Mutex
	state     *game.State
	sink      RenderSink
	store     Store
	sched     Scheduler
	task      Task
	gen       uint64 // bumped on every Start so stale ticks are dropped
	highScore int

	ctx       context.Context
	logger    *log.Logger
	onOutcome func(game.Outcome, game.Snapshot)
	onError   func(error)
}

// Option configures a Loop.
type Option func(*Loop)

// WithContext sets the context used for store calls.
func WithContext(ctx context.Context) Option {
	return func(l *Loop) { l.ctx = ctx }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithOutcomeHook registers fn to be called after every tick with the step
// outcome and the post-step state. fn runs inside the tick and must not call
// back into the Loop.
func WithOutcomeHook(fn func(game.Outcome, game.Snapshot)) Option {
	return func(l *Loop) { l.onOutcome = fn }
}

// WithErrorHandler registers fn to be called when the sink fails to flush.
// The schedule is stopped before fn runs. fn must not call back into the Loop.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Loop) { l.onError = fn }
}

// New creates a stopped loop and reads the high score from store once.
// A nil store disables persistence.
func New(state *game.State, sink RenderSink, store Store, sched Scheduler, opts ...Option) *Loop {
	l := &Loop{
		state: state,
		sink:  sink,
		store: store,
		sched: sched,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	if l.sched == nil {
		l.sched = TickerScheduler{}
	}
	l.highScore = l.loadHighScore()
	return l
}

// Start begins ticking every interval, replacing any running schedule.
// A non-positive interval uses config.TickInterval.
func (l *Loop) Start(interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked(interval)
}

// Stop cancels the schedule. Safe to call when not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// Restart resets the game in place and starts a fresh schedule.
func (l *Loop) Restart(interval time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Reset()
	l.sink.HideGameOver()
	l.sink.UpdateScore(0)
	l.startLocked(interval)
}

// Tick runs one render pass followed by one state transition.
func (l *Loop) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tickLocked()
}

// SetDirection forwards a direction request to the game state.
func (l *Loop) SetDirection(d game.Direction) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.SetDirection(d)
}

// Running reports whether a schedule is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.task != nil
}

// HighScore returns the best score known to this loop.
func (l *Loop) HighScore() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.highScore
}

// Snapshot returns a copy of the current game state.
func (l *Loop) Snapshot() game.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Snapshot()
}

func (l *Loop) startLocked(interval time.Duration) {
	if interval <= 0 {
		interval = config.TickInterval
	}
	l.stopLocked()
	l.gen++
	gen := l.gen
	l.task = l.sched.Every(interval, func() { l.scheduledTick(gen) })
}

func (l *Loop) stopLocked() {
	if l.task == nil {
		return
	}
	l.task.Stop()
	l.task = nil
}

// scheduledTick drops ticks that belong to a schedule that has since been
// stopped or replaced.
func (l *Loop) scheduledTick(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.task == nil || l.gen != gen {
		return
	}
	l.tickLocked()
}

func (l *Loop) tickLocked() {
	snap := l.state.Snapshot()
	l.sink.DrawBoard()
	l.sink.DrawSnake(snap.Segments)
	l.sink.DrawFood(snap.Food)

	outcome := l.state.Step()
	switch outcome {
	case game.FoodEaten:
		l.sink.UpdateScore(l.state.Score())
	case game.GameOver:
		l.stopLocked()
		l.gameOverLocked()
	}

	if f, ok := l.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			l.stopLocked()
			l.logger.Debug("render flush failed", "err", err)
			if l.onError != nil {
				l.onError(err)
			}
		}
	}

	if l.onOutcome != nil {
		l.onOutcome(outcome, l.state.Snapshot())
	}
}

func (l *Loop) gameOverLocked() {
	score := l.state.Score()
	newRecord := score > l.highScore
	if newRecord {
		l.highScore = score
		l.saveHighScore(score)
	}
	l.sink.ShowGameOver(score, newRecord)
}

func (l *Loop) loadHighScore() int {
	if l.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(l.ctx, storeTimeout)
	defer cancel()
	score, err := l.store.Load(ctx)
	if err != nil {
		l.logger.Warn("failed to load high score", "err", err)
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

func (l *Loop) saveHighScore(score int) {
	if l.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(l.ctx, storeTimeout)
	defer cancel()
	if err := l.store.Save(ctx, score); err != nil {
		l.logger.Warn("failed to save high score", "score", score, "err", err)
	}
}
