package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/limiter"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

func connectionLimiterMiddleware(connLimiter *limiter.IPLimiter) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := limiter.HostIP(s.RemoteAddr())

			count, ok := connLimiter.Acquire(ip)
			if !ok {
				log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", connLimiter.Max())
				errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count, connLimiter.Max())
				s.Write([]byte(errorMessage))
				s.Close()
				return
			}

			log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", connLimiter.Max())
			next(s)
			connLimiter.Release(ip)
			log.Info("Connection closed and counter decremented", "ip", ip, "count_after", connLimiter.Count(ip))
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	var recorder game.ScoreRecorder
	var scoreBoard ui.ScoreBoard
	highScores, err := game.NewHighScoreService(cfg.DBPath)
	if err != nil {
		log.Error("High scores disabled", "error", err)
	} else {
		defer highScores.Close()
		recorder, scoreBoard = highScores, highScores
	}

	newGame := cfg.GameFactory(recorder)
	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		// the session context ends with the connection and stops the game loop
		controllerModel := ui.NewControllerModel(sshSession.Context(), newGame, scoreBoard, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddress()),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware(limiter.NewIPLimiter(cfg.MaxConnectionsPerIP)),
		),
	)
	if err != nil {
		log.Fatal("Failed to create ssh server", "error", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.SSHAddress())
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
