package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okabrink/creator-scout/logger"
)

type runProgressMsg string

type runCompleteMsg struct {
	summary string
}

type runErrorMsg struct {
	err error
}

type editConfigFinishedMsg struct{}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.width = msg.Width
		m.height = msg.Height
		if m.state == CreatorsState {
			m.updateCreatorsTable()
		}
		if m.state == BrandsState {
			m.updateBrandsTable()
		}
		return m, nil
	case runProgressMsg:
		m.progressLines = append(m.progressLines, string(msg))
		return m, m.listenProgress()
	case runCompleteMsg:
		m.message = msg.summary
		m.state = CompletionState
		m.cursorPos = 0
		return m, nil
	case runErrorMsg:
		m.message = "Error: " + msg.err.Error()
		m.state = CompletionState
		m.cursorPos = 0
		return m, nil
	case editConfigFinishedMsg:
		m.state = MainMenuState
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
		switch m.state {
		case MainMenuState:
			return m.HandleMainMenuUpdate(msg)
		case HashtagInputState:
			return m.HandleHashtagInputUpdate(msg)
		case HandleInputState:
			return m.HandleHandleInputUpdate(msg)
		case RunProgressState:
			return m.HandleRunProgressUpdate(msg)
		case CreatorsState:
			return m.HandleCreatorsUpdate(msg)
		case BrandsState:
			return m.HandleBrandsUpdate(msg)
		case StatsState:
			return m.HandleStatsUpdate(msg)
		case CompletionState:
			return m.HandleCompletionUpdate(msg)
		default:
			logger.Logger.Printf("Unhandled state: %v", m.state)
			return m, nil
		}
	}
	return m, nil
}

func (m *MainModel) View() string {
	switch m.state {
	case MainMenuState:
		return m.RenderMainMenu()
	case HashtagInputState:
		return m.RenderHashtagInput()
	case HandleInputState:
		return m.RenderHandleInput()
	case RunProgressState:
		return m.RenderRunProgress()
	case CreatorsState:
		return m.RenderCreatorsMenu()
	case BrandsState:
		return m.RenderBrandsMenu()
	case StatsState:
		return m.RenderStatsMenu()
	case CompletionState:
		return m.RenderCompletionMenu()
	default:
		return "Unknown state"
	}
}
