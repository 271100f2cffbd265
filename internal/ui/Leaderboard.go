package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const leaderboardSize = 10

var (
	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

type leaderboardLoadedMsg struct {
	scores []game.Score
	err    error
}

type LeaderboardModel struct {
	scoreBoard   ScoreBoard
	scores       []game.Score
	err          error
	loaded       bool
	ScreenWidth  int
	ScreenHeight int
}

func NewLeaderboardModel(scoreBoard ScoreBoard, screenWidth, screenHeight int) LeaderboardModel {
	return LeaderboardModel{
		scoreBoard:   scoreBoard,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// Init loads the table off the update loop.
func (m LeaderboardModel) Init() tea.Cmd {
	scoreBoard := m.scoreBoard
	return func() tea.Msg {
		if scoreBoard == nil {
			return leaderboardLoadedMsg{}
		}
		scores, err := scoreBoard.GetHighScores(leaderboardSize, 0)
		return leaderboardLoadedMsg{scores: scores, err: err}
	}
}

func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
	case leaderboardLoadedMsg:
		m.loaded = true
		m.scores, m.err = msg.scores, msg.err
		if msg.err != nil {
			log.Error("Could not load leaderboard", "error", msg.err)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "l":
			return m, func() tea.Msg { return LeaveLeaderboardMsg{} }
		}
	}
	return m, nil
}

func (m LeaderboardModel) View() string {
	var tableContent strings.Builder

	nameWidth := 20
	scoreWidth := 8
	dateWidth := 12

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
		leaderboardHeaderStyle.Width(dateWidth).Render("Date"),
	)
	tableContent.WriteString(header + "\n")

	switch {
	case !m.loaded:
		tableContent.WriteString(leaderboardRowStyle.Render("Loading...") + "\n")
	case m.err != nil:
		tableContent.WriteString(leaderboardRowStyle.Render("Leaderboard unavailable") + "\n")
	case len(m.scores) == 0:
		tableContent.WriteString(leaderboardRowStyle.Render("No scores yet") + "\n")
	}

	for i, score := range m.scores {
		date := ""
		if !score.CreatedAt.IsZero() {
			date = score.CreatedAt.Format("2006-01-02")
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
			leaderboardRowStyle.Width(dateWidth).Render(date),
		)

		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("TOP SNAKES")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to go back.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
