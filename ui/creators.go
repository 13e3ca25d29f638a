package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/utils"
)

const creatorsListLimit = 200

func (m *MainModel) loadCreators() {
	creators, err := m.creators.List(creatorsListLimit)
	if err != nil {
		logger.Logger.Printf("Failed to list creators: %v", err)
		creators = nil
	}
	m.creatorRows = creators
	m.updateCreatorsTable()
}

func (m *MainModel) HandleCreatorsUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Select):
			row := m.table.SelectedRow()
			if row != nil {
				url := utils.ProfileURL(row[1], row[0])
				if err := utils.OpenURL(url); err != nil {
					logger.Logger.Printf("Failed to open %s: %v", url, err)
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.state = MainMenuState
			m.cursorPos = 0
			return m, nil
		}
	}
	return m, nil
}

func (m *MainModel) RenderCreatorsMenu() string {
	var sb strings.Builder

	title := fmt.Sprintf("Saved creators (%d)", len(m.creatorRows))
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render(title) + "\n")
	sb.WriteString(m.table.View() + "\n")
	helpView := m.help.View(m.keys)
	height := m.height - strings.Count(helpView, "\n") - m.table.Height() - 6
	if height < 0 {
		height = 0
	}
	sb.WriteString("\n" + strings.Repeat("\n", height) + helpView)

	return sb.String()
}

func (m *MainModel) updateCreatorsTable() {
	columns := []table.Column{
		{Title: "Handle", Width: 22},
		{Title: "Platform", Width: 10},
		{Title: "Followers", Width: 10},
		{Title: "Engagement", Width: 11},
		{Title: "Category", Width: 18},
		{Title: "Enriched", Width: 10},
	}

	rows := make([]table.Row, len(m.creatorRows))
	for i, creator := range m.creatorRows {
		engagement := "-"
		if creator.EngagementRate != nil {
			engagement = fmt.Sprintf("%.2f%%", *creator.EngagementRate)
		}
		enriched := "no"
		if creator.EnrichedAt != nil {
			enriched = creator.EnrichedAt.Format("2006-01-02")
		}
		rows[i] = table.Row{
			creator.Handle,
			creator.Platform,
			fmt.Sprintf("%d", creator.FollowerCount),
			engagement,
			creator.CategoryName,
			enriched,
		}
	}

	tableHeight := m.height - 10
	if tableHeight < 5 {
		tableHeight = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("#cba6f7")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
}
