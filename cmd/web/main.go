package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/store"
	"github.com/tomz197/snake/internal/web"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultScoreFile = "/app/data/highscore.json"
)

func main() {
	logClose, err := config.ConfigureLogging(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "")
	tick := config.GetEnvDuration("SNAKE_TICK", config.TickInterval)

	st, err := store.Open(context.Background(),
		config.GetEnv("SNAKE_DB_DSN", ""),
		config.GetEnv("SNAKE_HIGHSCORE_FILE", defaultScoreFile),
		config.HighScoreSlot)
	if err != nil {
		log.Fatal("failed to open high score store", "err", err)
	}
	defer st.Close()

	srv := web.NewServer(st,
		web.WithInterval(tick),
		web.WithSSHHost(sshHost),
		web.WithLogger(log.Default()),
	)

	addr := net.JoinHostPort(host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting web server", "url", "http://"+addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("Shutting down server...", "sessions", srv.Sessions())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
