// Package web serves the browser version of the game. Each websocket
// connection runs its own session; frames are streamed as JSON and drawn on
// a canvas by the embedded page.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/session"
)

//go:embed static/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const maxMessageSize = 512

// Server hosts browser game sessions.
type Server struct {
	store    loop.Store
	interval time.Duration
	idle     time.Duration
	sshHost  string
	logger   *log.Logger
	upgrader websocket.Upgrader
	sessions atomic.Int64

	width, height, cellSize int
}

// Option configures a Server.
type Option func(*Server)

// WithInterval sets the tick interval of every session.
func WithInterval(d time.Duration) Option {
	return func(s *Server) { s.interval = d }
}

// WithIdleTimeout closes sessions without input for d.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idle = d }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSSHHost advertises an SSH endpoint on the landing page.
func WithSSHHost(host string) Option {
	return func(s *Server) { s.sshHost = host }
}

// WithBoard overrides the board dimensions.
func WithBoard(width, height, cellSize int) Option {
	return func(s *Server) {
		s.width, s.height, s.cellSize = width, height, cellSize
	}
}

// NewServer creates a server sharing st between all sessions.
func NewServer(st loop.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		interval: config.TickInterval,
		idle:     config.IdleDisconnect,
		width:    config.BoardWidth,
		height:   config.BoardHeight,
		cellSize: config.CellSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/api/highscore", s.handleHighScore)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SSHHost string
		Width   int
		Height  int
	}{s.sshHost, s.width, s.height}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	var high int
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		score, err := s.store.Load(ctx)
		if err != nil {
			s.logger.Warn("load high score", "err", err)
		} else {
			high = score
		}
	}
	writeJSON(w, http.StatusOK, HighScoreResponse{HighScore: high})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Sessions()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer c.Close()

	logger := s.logger.With("session", uuid.NewString(), "remote", r.RemoteAddr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := newSink(c, s.width, s.height, s.cellSize)
	state := game.New(s.width, s.height, s.cellSize)
	l := loop.New(state, sink, s.store, loop.TickerScheduler{},
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

	sess := session.New(l, sink, readKeys(ctx, c),
		session.WithInterval(s.interval),
		session.WithIdleTimeout(s.idle),
		session.WithLogger(logger),
	)

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	logger.Info("web session started")
	if err := sess.Run(ctx); err != nil {
		logger.Info("web session ended", "err", err)
		return
	}
	logger.Info("web session ended")
}

// readKeys decodes key messages until the connection fails or ctx ends.
func readKeys(ctx context.Context, c *websocket.Conn) <-chan input.Key {
	ch := make(chan input.Key, 16)
	c.SetReadLimit(maxMessageSize)
	go func() {
		defer close(ch)
		for {
			var msg KeyMessage
			if err := c.ReadJSON(&msg); err != nil {
				return
			}
			k := input.ParseKeyName(msg.Key)
			if k == input.KeyNone {
				continue
			}
			select {
			case ch <- k:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
