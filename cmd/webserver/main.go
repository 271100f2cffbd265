package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/limiter"
	"github.com/Mshel/gridsnake/internal/web"
	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	var recorder game.ScoreRecorder
	highScores, err := game.NewHighScoreService(cfg.DBPath)
	if err != nil {
		log.Error("High scores disabled", "error", err)
	} else {
		defer highScores.Close()
		recorder = highScores
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           web.NewServer(cfg.GameFactory(recorder), limiter.NewIPLimiter(cfg.MaxConnectionsPerIP)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting HTTP server", "address", cfg.HTTPAddress())
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
