package config

import (
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
)

// GameFactory returns a constructor for per-player games. Every game gets its
// own autopilot strategy since a Lua state is not shared between loops.
// recorder may be nil.
func (c Config) GameFactory(recorder game.ScoreRecorder) func(playerName string) *game.GameManager {
	return func(playerName string) *game.GameManager {
		opts := []game.Option{
			game.WithPlayerName(playerName),
			game.WithBoardSize(c.BoardSize),
			game.WithTickDuration(c.TickDuration),
			game.WithStrategy(c.newStrategy()),
			game.WithLogger(log.WithPrefix("game")),
		}
		if recorder != nil {
			opts = append(opts, game.WithScoreRecorder(recorder))
		}
		return game.NewGameManager(opts...)
	}
}

func (c Config) newStrategy() game.Strategy {
	if c.AutopilotScript == "" {
		return &game.DefaultStrategy{}
	}

	strategy, err := game.LoadLuaStrategy(c.AutopilotScript)
	if err != nil {
		log.Error("Falling back to the default autopilot", "script", c.AutopilotScript, "error", err)
		return &game.DefaultStrategy{}
	}
	return strategy
}
