package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	voidColor    = lipgloss.Color("233")
	foodColor    = lipgloss.Color("196")
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle = lipgloss.NewStyle().Background(voidColor).Render("  ")
	foodStyle = lipgloss.NewStyle().Background(voidColor).Foreground(foodColor).Render("● ")

	headRunes = map[game.Direction]string{
		game.Up:    "▲ ",
		game.Down:  "▼ ",
		game.Left:  "◀ ",
		game.Right: "▶ ",
	}

	gameOverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

const statusPanelWidth = 34

// steering and control keys forwarded to the game loop
var gameKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"p": true, " ": true, "r": true, "a": true,
}

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	PlayerName   string
	TickCount    int

	ctx         context.Context
	gameManager *game.GameManager
	scoreBoard  ScoreBoard
	snakeStyle  lipgloss.Style
	headStyle   lipgloss.Style

	snapshot     game.Snapshot
	autopilot    bool
	bestScore    int
	lastGameOver *game.GameOverMsg
}

func NewGameModel(ctx context.Context, gm *game.GameManager, scoreBoard ScoreBoard, playerName string, color string, screenWidth int, screenHeight int) GameViewModel {
	m := GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		PlayerName:   playerName,
		ctx:          ctx,
		gameManager:  gm,
		scoreBoard:   scoreBoard,
		snakeStyle:   lipgloss.NewStyle().Background(lipgloss.Color(color)),
		headStyle:    lipgloss.NewStyle().Background(lipgloss.Color(color)).Foreground(lipgloss.Color("0")).Bold(true),
		snapshot:     gm.Snapshot(),
		autopilot:    gm.Autopilot(),
	}
	m.bestScore = m.loadBestScore()
	return m
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "l" {
			return m, func() tea.Msg { return ShowLeaderboardMsg{} }
		}
		if gameKeys[key] {
			m.gameManager.SendKey(key)
		}
		return m, nil

	case game.GameTickMsg:
		m.TickCount++
		m.snapshot = msg.Snapshot
		m.autopilot = msg.Autopilot
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		log.Debug("Game over shown", "player", m.PlayerName, "score", msg.Score, "reason", msg.Reason)
		m.lastGameOver = &msg
		m.bestScore = max(m.bestScore, msg.Score, m.loadBestScore())
		return m, m.listenForGameUpdates()
	}

	return m, nil
}

func (m GameViewModel) loadBestScore() int {
	if m.scoreBoard == nil {
		return 0
	}
	best, err := m.scoreBoard.GetBestScore(m.PlayerName)
	if err != nil {
		log.Error("Could not load best score", "player", m.PlayerName, "error", err)
		return 0
	}
	return best
}

func (m GameViewModel) View() string {
	mapContent := m.renderMap()
	statusContent := m.renderStatusPanel()

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Render(statusContent),
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderMap() string {
	var sb strings.Builder
	head := m.snapshot.Head()

	for row, cells := range m.snapshot.Rows {
		for col, cell := range cells {
			switch m.snapshot.CellState(cell) {
			case game.CellSnake:
				if row == head.Row && col == head.Col {
					sb.WriteString(m.headStyle.Render(headRunes[m.snapshot.Direction]))
				} else {
					sb.WriteString(m.snakeStyle.Render("  "))
				}
			case game.CellFood:
				sb.WriteString(foodStyle)
			default:
				sb.WriteString(voidStyle)
			}
		}
		if row < len(m.snapshot.Rows)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder
	bold := lipgloss.NewStyle().Bold(true)

	statusContent.WriteString(bold.Render("--- Player ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("%s%s\n", m.headStyle.Render("▶ "), m.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", m.snapshot.Score))
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", m.bestScore))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(m.snapshot.Body)))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", strings.TrimSpace(headRunes[m.snapshot.Direction])))

	if m.snapshot.Status == game.StatusPaused {
		statusContent.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	if m.autopilot {
		statusContent.WriteString(pausedStyle.Render("AUTOPILOT") + "\n")
	}
	if m.lastGameOver != nil {
		statusContent.WriteString("\n" + gameOverStyle.Render("GAME OVER") + "\n")
		statusContent.WriteString(fmt.Sprintf("%s with %d points\n", m.lastGameOver.Reason, m.lastGameOver.Score))
	}

	statusContent.WriteString("\n" + bold.Render("--- Controls ---") + "\n")
	statusContent.WriteString("Arrows: Move\n")
	statusContent.WriteString("P / Space: Pause\n")
	statusContent.WriteString("R: Restart\n")
	statusContent.WriteString("A: Autopilot\n")
	statusContent.WriteString("L: Leaderboard\n")
	statusContent.WriteString("Q / Ctrl+C: Quit Game\n")

	return statusContent.String()
}

// listenForGameUpdates waits for the next update from the game loop. It gives
// up when the session context ends.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.gameManager.UpdateChannel
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case msg := <-updates:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}
