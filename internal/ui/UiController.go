package ui

import (
	"context"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	LeaderboardScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Leaderboard
type SetupSubmitMsg struct {
	Name  string
	Color string
}

type ShowLeaderboardMsg struct{}

// LeaveLeaderboardMsg returns to the screen the leaderboard was opened from.
type LeaveLeaderboardMsg struct{}

// GameFactory builds the game for a player who finished the setup form.
type GameFactory func(playerName string) *game.GameManager

// ScoreBoard is the read side of the high score table.
type ScoreBoard interface {
	GetHighScores(limit, offset int) ([]game.Score, error)
	GetBestScore(playerName string) (int, error)
}

type ControllerModel struct {
	CurrentScreen  Screen
	previousScreen Screen

	IntroModel       tea.Model
	SetupModel       tea.Model
	GameModel        tea.Model
	LeaderboardModel tea.Model

	ctx          context.Context
	newGame      GameFactory
	scoreBoard   ScoreBoard
	ScreenWidth  int
	ScreenHeight int
}

// NewControllerModel wires the screens together. ctx bounds the lifetime of
// the game loop started after setup; scoreBoard may be nil.
func NewControllerModel(ctx context.Context, newGame GameFactory, scoreBoard ScoreBoard, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		ctx:          ctx,
		newGame:      newGame,
		scoreBoard:   scoreBoard,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			return m.LeaderboardModel.View()
		}
		return "Leaderboard Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global keys. q is free for typing while the name form is open. ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			return m, tea.Quit
		}
	}

	// --- 2. State transitions ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		var cmds []tea.Cmd
		m.IntroModel, cmd = m.IntroModel.Update(msg)
		cmds = append(cmds, cmd)
		m.SetupModel, cmd = m.SetupModel.Update(msg)
		cmds = append(cmds, cmd)
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		return m.openLeaderboard()

	case ShowLeaderboardMsg:
		return m.openLeaderboard()

	case LeaveLeaderboardMsg:
		m.CurrentScreen = m.previousScreen
		return m, nil

	case SetupSubmitMsg:
		gameManager := m.newGame(msg.Name)
		go gameManager.StartGameLoop(m.ctx)

		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.ctx, gameManager, m.scoreBoard, msg.Name, msg.Color, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case game.GameTickMsg, game.GameOverMsg:
		// game updates keep flowing while another screen is shown
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
		return m, cmd
	}

	// --- 3. Delegate everything else to the active screen ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
		}
	}

	return m, cmd
}

func (m ControllerModel) openLeaderboard() (tea.Model, tea.Cmd) {
	if m.CurrentScreen != LeaderboardScreen {
		m.previousScreen = m.CurrentScreen
	}
	m.CurrentScreen = LeaderboardScreen
	m.LeaderboardModel = NewLeaderboardModel(m.scoreBoard, m.ScreenWidth, m.ScreenHeight)
	return m, m.LeaderboardModel.Init()
}
