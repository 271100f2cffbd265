package game

import "time"

const (
	GameTickDuration = 150 * time.Millisecond
	BoardSize        = 10
	StartingRow      = 1
	StartingCol      = 7
	// food starts this many cells after the starting cell
	StartingFoodOffset = 5

	StartingDirection = Right
	// a game over resets the direction to Down, not to StartingDirection
	GameOverDirection = Down

	// rejected random draws before food placement falls back to scanning free cells
	maxFoodDraws = 64

	updateChannelSize = 16
	keyChannelSize    = 10

	// upper bound for one autopilot decision
	MaxStrategyCalculationTime = 50 * time.Millisecond
)

var (
	PauseKeys     = map[string]bool{"p": true, " ": true, "space": true}
	RestartKeys   = map[string]bool{"r": true}
	AutopilotKeys = map[string]bool{"a": true}
)
