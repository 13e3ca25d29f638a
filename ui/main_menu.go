package ui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/logger"
)

func (m *MainModel) HandleMainMenuUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursorPos = (m.cursorPos - 1 + len(m.options)) % len(m.options)
		case key.Matches(msg, m.keys.Down):
			m.cursorPos = (m.cursorPos + 1) % len(m.options)
		case key.Matches(msg, m.keys.Select):
			m.selected = m.options[m.cursorPos]
			return m.handleMainMenuSelection()
		}
	}
	return m, nil
}

func (m *MainModel) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	switch m.selected {
	case "Discover creators by hashtag":
		m.state = HashtagInputState
		m.hashtagInput.SetValue("")
		m.hashtagInput.Focus()
		return m, textinput.Blink
	case "Enrich a creator's engagement":
		m.state = HandleInputState
		m.handleInput.SetValue("")
		m.handleInput.Focus()
		return m, textinput.Blink
	case "Browse saved creators":
		m.loadCreators()
		m.state = CreatorsState
		return m, nil
	case "Browse detected brands":
		m.loadBrands()
		m.state = BrandsState
		return m, nil
	case "View database stats":
		m.statsData = m.stats.Collect()
		m.state = StatsState
		return m, nil
	case "Toggle background refresh":
		if m.refreshOn {
			m.refresh.Stop()
			m.refreshOn = false
			m.message = "Background refresh stopped."
		} else {
			m.refresh.Start(context.Background())
			m.refreshOn = true
			m.message = "Background refresh started."
		}
		return m, nil
	case "Edit config.toml file":
		configPath := config.GetConfigPath()
		if err := config.EnsureConfigExists(configPath); err != nil {
			logger.Logger.Printf("Error ensuring config exists: %v", err)
			return m, nil
		}
		return m, tea.ExecProcess(exec.Command(m.getEditor(), configPath), func(err error) tea.Msg {
			if err != nil {
				logger.Logger.Printf("Error editing config: %v", err)
			}
			return editConfigFinishedMsg{}
		})
	case "Quit":
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *MainModel) RenderMainMenu() string {
	var sb strings.Builder

	configPath := config.GetConfigPath()
	styledConfigPath := lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c2e7")).Render(configPath)
	welcomeMessage := "Config path: " + styledConfigPath + "\n" + "Welcome to Creator-scout Version " + m.version
	styledWelcomeMessage := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render(welcomeMessage)
	sb.WriteString(styledWelcomeMessage + "\n")

	repoLink := "https://github.com/okabrink/creator-scout"
	styledRepoLink := lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Render(repoLink)
	sb.WriteString("Maintainer's repo: " + styledRepoLink + "\n\n")

	if m.message != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Render(m.message) + "\n\n")
	}

	sb.WriteString("What would you like to do? " + "\n")

	for i, opt := range m.options {
		label := opt
		if opt == "Toggle background refresh" {
			if m.refreshOn {
				label += " (running)"
			} else {
				label += " (stopped)"
			}
		}
		if i == m.cursorPos {
			sb.WriteString("> " + lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb")).Render(label) + "\n")
		} else {
			sb.WriteString("  " + label + "\n")
		}
	}

	return sb.String()
}

func (m *MainModel) getEditor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			editor = "notepad"
		} else {
			editor = "vim"
		}
	}
	return editor
}
