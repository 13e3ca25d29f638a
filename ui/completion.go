package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *MainModel) HandleCompletionUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursorPos = (m.cursorPos - 1 + 2) % 2
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.cursorPos = (m.cursorPos + 1) % 2
			return m, nil
		case key.Matches(msg, m.keys.Select):
			switch m.cursorPos {
			case 0: // Return to main menu
				m.message = ""
				m.state = MainMenuState
				m.cursorPos = 0
				return m, nil
			case 1: // Quit
				m.quit = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *MainModel) RenderCompletionMenu() string {
	var sb strings.Builder
	options := []string{
		"Return to main menu",
		"Quit",
	}

	sb.WriteString(m.message + "\n\n")
	sb.WriteString("What would you like to do next?\n\n")

	for i, opt := range options {
		if i == m.cursorPos {
			sb.WriteString("> " + lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb")).Render(opt) + "\n")
		} else {
			sb.WriteString("  " + opt + "\n")
		}
	}

	return sb.String()
}
