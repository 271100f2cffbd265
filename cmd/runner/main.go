package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	// the alt screen owns the terminal, so logs go to a file or nowhere
	log.SetLevel(cfg.LogLevel)
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Printf("error %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	var recorder game.ScoreRecorder
	var scoreBoard ui.ScoreBoard
	highScores, err := game.NewHighScoreService(cfg.DBPath)
	if err != nil {
		log.Error("High scores disabled", "error", err)
	} else {
		defer highScores.Close()
		recorder, scoreBoard = highScores, highScores
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(
		ui.NewControllerModel(ctx, cfg.GameFactory(recorder), scoreBoard, 0, 0),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
}
