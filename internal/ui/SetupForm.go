package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	colorSwatchStyle   = lipgloss.NewStyle().Width(2)
	selectedColorStyle = lipgloss.NewStyle().Width(2)
	buttonStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)

	// xterm-256 colours that stay readable on the dark board background
	snakeColorOptions = []string{"42", "46", "48", "51", "39", "33", "99", "129", "165", "201", "205", "208", "214", "220", "226", "190"}
)

const (
	defaultPlayerName = "anonymous"
	maxNameLength     = 20
)

type setupFocus int

const (
	focusName setupFocus = iota
	focusColor
	focusSubmit
)

type SetupModel struct {
	nameInput  textinput.Model
	colorIndex int
	focus      setupFocus
	width      int
	height     int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = maxNameLength
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) playerName() string {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return defaultPlayerName
	}
	return name
}

func (m SetupModel) setFocus(focus setupFocus) SetupModel {
	m.focus = focus
	if focus == focusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	return m
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "tab":
			return m.setFocus((m.focus + 1) % 3), nil
		case "shift+tab":
			return m.setFocus((m.focus + 2) % 3), nil
		case "enter":
			if m.focus != focusSubmit {
				return m.setFocus(m.focus + 1), nil
			}
			name, color := m.playerName(), snakeColorOptions[m.colorIndex]
			return m, func() tea.Msg {
				return SetupSubmitMsg{Name: name, Color: color}
			}
		}

		if m.focus == focusColor {
			switch s {
			case "left", "up":
				m.colorIndex = (m.colorIndex - 1 + len(snakeColorOptions)) % len(snakeColorOptions)
			case "right", "down":
				m.colorIndex = (m.colorIndex + 1) % len(snakeColorOptions)
			}
			return m, nil
		}

		if m.focus == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	colorPrompt := "Select your snake color (use arrows)"
	if m.focus == focusColor {
		b.WriteString(center(focusedStyle.Render(colorPrompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(colorPrompt)))
	}
	b.WriteString("\n")

	var colorSwatches strings.Builder
	for i, colorCode := range snakeColorOptions {
		style := colorSwatchStyle.Foreground(lipgloss.Color(colorCode))
		if i == m.colorIndex {
			colorSwatches.WriteString(style.Render("██"))
		} else {
			colorSwatches.WriteString(style.Render("░░"))
		}
	}
	b.WriteString(center(colorSwatches.String()))
	b.WriteString("\n")

	selected := snakeColorOptions[m.colorIndex]
	b.WriteString(center("Snake color " + selectedColorStyle.Foreground(lipgloss.Color(selected)).Render("██")))
	b.WriteString("\n\n")

	submitText := "Start"
	if m.focus == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to select color, tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
