package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okabrink/creator-scout/posts"
)

func (m *MainModel) HandleHashtagInputUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "esc":
			m.hashtagInput.Blur()
			m.state = MainMenuState
			return m, nil
		case "enter":
			hashtags := splitHashtags(m.hashtagInput.Value())
			if len(hashtags) == 0 {
				return m, nil
			}
			m.hashtagInput.Blur()
			return m.startDiscovery(hashtags)
		}
	}

	var cmd tea.Cmd
	m.hashtagInput, cmd = m.hashtagInput.Update(msg)
	return m, cmd
}

func (m *MainModel) RenderHashtagInput() string {
	var sb strings.Builder

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render("Discover creators by hashtag")
	sb.WriteString(title + "\n\n")
	sb.WriteString("Enter one or more hashtags, comma separated (no # needed):\n\n")
	sb.WriteString(m.hashtagInput.View() + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("enter: start scrape • esc: back"))

	return sb.String()
}

func (m *MainModel) HandleHandleInputUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "esc":
			m.handleInput.Blur()
			m.state = MainMenuState
			return m, nil
		case "tab":
			if m.enrichPlatform == posts.PlatformInstagram {
				m.enrichPlatform = posts.PlatformTikTok
			} else {
				m.enrichPlatform = posts.PlatformInstagram
			}
			return m, nil
		case "enter":
			handle := posts.NormalizeHandle(m.handleInput.Value())
			if handle == "" {
				return m, nil
			}
			m.handleInput.Blur()
			return m.startEnrichment(handle, m.enrichPlatform)
		}
	}

	var cmd tea.Cmd
	m.handleInput, cmd = m.handleInput.Update(msg)
	return m, cmd
}

func (m *MainModel) RenderHandleInput() string {
	var sb strings.Builder

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render("Enrich a creator's engagement")
	sb.WriteString(title + "\n\n")
	sb.WriteString("Platform: " + lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb")).Render(string(m.enrichPlatform)) + " (tab to switch)\n\n")
	sb.WriteString("Enter the creator's handle:\n\n")
	sb.WriteString(m.handleInput.View() + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("enter: enrich • tab: switch platform • esc: back"))

	return sb.String()
}

func splitHashtags(input string) []string {
	var hashtags []string
	for _, part := range strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if tag != "" {
			hashtags = append(hashtags, tag)
		}
	}
	return hashtags
}
