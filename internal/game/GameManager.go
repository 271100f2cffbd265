package game

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

type GameTickMsg struct {
	Snapshot  Snapshot
	Autopilot bool
}

type GameOverMsg struct {
	Score  int
	Reason TickEvent
}

// ScoreRecorder persists final scores. *HighScoreService implements it.
type ScoreRecorder interface {
	SavePlayersHighScore(playerName string, score int, boardSize int) error
}

type GameManager struct {
	KeyChannel    chan string
	UpdateChannel chan tea.Msg
	PlayerName    string

	stateMutex sync.RWMutex
	state      GameState

	rng          RandomSource
	tickDuration time.Duration
	recorder     ScoreRecorder
	strategy     Strategy
	autopilot    bool
	logger       *log.Logger
	isRunning    atomic.Bool
}

type Option func(*GameManager)

func WithBoardSize(size int) Option {
	return func(gm *GameManager) {
		gm.state = NewGameState(CreateBoard(size))
	}
}

func WithTickDuration(d time.Duration) Option {
	return func(gm *GameManager) {
		gm.tickDuration = d
	}
}

func WithRandomSource(rng RandomSource) Option {
	return func(gm *GameManager) {
		gm.rng = rng
	}
}

func WithPlayerName(name string) Option {
	return func(gm *GameManager) {
		gm.PlayerName = name
	}
}

func WithScoreRecorder(recorder ScoreRecorder) Option {
	return func(gm *GameManager) {
		gm.recorder = recorder
	}
}

// WithStrategy sets the autopilot strategy. A strategy implementing io.Closer
// is closed when the game loop returns.
func WithStrategy(strategy Strategy) Option {
	return func(gm *GameManager) {
		gm.strategy = strategy
	}
}

func WithAutopilot(on bool) Option {
	return func(gm *GameManager) {
		gm.autopilot = on
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(gm *GameManager) {
		gm.logger = logger
	}
}

func NewGameManager(opts ...Option) *GameManager {
	gm := &GameManager{
		KeyChannel:    make(chan string, keyChannelSize),
		UpdateChannel: make(chan tea.Msg, updateChannelSize),
		state:         NewGameState(CreateBoard(BoardSize)),
		rng:           rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		tickDuration:  GameTickDuration,
		logger:        log.Default(),
	}

	for _, opt := range opts {
		opt(gm)
	}

	return gm
}

// StartGameLoop runs ticks and key handling until ctx is done, then records
// the running score. The ticker is stopped on return. Calling it while a loop
// is running does nothing.
func (gm *GameManager) StartGameLoop(ctx context.Context) {
	if !gm.isRunning.CompareAndSwap(false, true) {
		return
	}
	defer gm.isRunning.Store(false)

	gm.logger.Debug("Game loop started.", "player", gm.PlayerName, "tick", gm.tickDuration)

	ticker := time.NewTicker(gm.tickDuration)
	defer ticker.Stop()

	if closer, ok := gm.strategy.(io.Closer); ok {
		defer closer.Close()
	}

	for {
		select {
		case <-ctx.Done():
			gm.logger.Debug("Game loop stopped.", "player", gm.PlayerName)
			gm.stateMutex.RLock()
			score, boardSize := gm.state.Score, gm.state.Board.Size()
			gm.stateMutex.RUnlock()
			gm.recordScore(score, boardSize)
			return
		case <-ticker.C:
			gm.processGameTick()
		case key := <-gm.KeyChannel:
			gm.processKey(key)
		}
	}
}

func (gm *GameManager) IsRunning() bool {
	return gm.isRunning.Load()
}

// SendKey queues a key for the game loop. Keys are dropped when the queue is full.
func (gm *GameManager) SendKey(key string) {
	select {
	case gm.KeyChannel <- key:
	default:
		gm.logger.Debug("Key dropped, input queue full", "key", key)
	}
}

func (gm *GameManager) Autopilot() bool {
	gm.stateMutex.RLock()
	defer gm.stateMutex.RUnlock()
	return gm.autopilot
}

func (gm *GameManager) Snapshot() Snapshot {
	gm.stateMutex.RLock()
	defer gm.stateMutex.RUnlock()
	return gm.state.Snapshot()
}

func (gm *GameManager) processKey(key string) {
	restartedScore := 0
	gm.stateMutex.Lock()
	switch {
	case PauseKeys[key]:
		gm.state = TogglePause(gm.state)
	case RestartKeys[key]:
		restartedScore = gm.state.Score
		gm.state = Restart(gm.state)
	case AutopilotKeys[key]:
		gm.autopilot = !gm.autopilot && gm.strategy != nil
		gm.logger.Debug("Autopilot toggled", "player", gm.PlayerName, "on", gm.autopilot)
	default:
		gm.state = ApplyInput(gm.state, key)
	}
	snapshot := gm.state.Snapshot()
	autopilot := gm.autopilot
	gm.stateMutex.Unlock()

	gm.recordScore(restartedScore, snapshot.BoardSize)
	gm.publish(GameTickMsg{Snapshot: snapshot, Autopilot: autopilot})
}

func (gm *GameManager) processGameTick() {
	// only the loop goroutine writes state, so the strategy runs without holding the lock
	gm.stateMutex.RLock()
	steer := gm.autopilot && gm.strategy != nil && gm.state.IsPlaying()
	current := gm.state.Snapshot()
	gm.stateMutex.RUnlock()

	var direction Direction
	if steer {
		direction = gm.strategy.NextDirection(current)
	}

	gm.stateMutex.Lock()
	if steer {
		gm.state = ApplyDirection(gm.state, direction)
	}
	var result TickResult
	gm.state, result = Tick(gm.state, gm.rng)
	snapshot := gm.state.Snapshot()
	boardSize := gm.state.Board.Size()
	autopilot := gm.autopilot
	gm.stateMutex.Unlock()

	if result.Event == EventSkipped {
		return
	}

	if result.Event.IsGameOver() {
		gm.logger.Info("Game over", "player", gm.PlayerName, "reason", result.Event, "score", result.Score)
		gm.recordScore(result.Score, boardSize)
		gm.publish(GameOverMsg{Score: result.Score, Reason: result.Event})
	}

	gm.publish(GameTickMsg{Snapshot: snapshot, Autopilot: autopilot})
}

func (gm *GameManager) recordScore(score int, boardSize int) {
	if gm.recorder == nil || score == 0 {
		return
	}

	if err := gm.recorder.SavePlayersHighScore(gm.PlayerName, score, boardSize); err != nil {
		gm.logger.Error("High score persist failed", "player", gm.PlayerName, "error", err)
	}
}

// publish never blocks the loop; an update is dropped when no one is reading.
func (gm *GameManager) publish(msg tea.Msg) {
	select {
	case gm.UpdateChannel <- msg:
	default:
	}
}
