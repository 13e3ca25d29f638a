package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *MainModel) HandleStatsUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
			m.state = MainMenuState
			m.cursorPos = 0
			return m, nil
		}
	}
	return m, nil
}

func (m *MainModel) RenderStatsMenu() string {
	var sb strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c2e7")).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb"))

	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render("Database stats") + "\n\n")

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	line("Creators", fmt.Sprintf("%d", m.statsData.TotalCreators))
	line("Added this week", fmt.Sprintf("%d", m.statsData.AddedThisWeek))
	line("Avg engagement", fmt.Sprintf("%.2f%%", m.statsData.AvgEngagement))
	topCategory := m.statsData.TopCategory
	if topCategory == "" {
		topCategory = "-"
	}
	line("Top category", topCategory)
	line("Brands", fmt.Sprintf("%d", m.statsData.TotalBrands))
	line("Partnerships", fmt.Sprintf("%d", m.statsData.TotalPartnerships))
	line("Posts", fmt.Sprintf("%d", m.statsData.TotalPosts))

	if len(m.statsData.RecentRuns) > 0 {
		sb.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c2e7")).Render("Recent runs") + "\n")
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		for _, run := range m.statsData.RecentRuns {
			entry := fmt.Sprintf("  %s  %v  %d creators saved",
				run.StartedAt.Format("2006-01-02 15:04"), []string(run.Hashtags), run.CreatorsSaved)
			sb.WriteString(dimStyle.Render(entry) + "\n")
		}
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("esc: back to menu"))

	return sb.String()
}
