package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/utils"
)

const (
	brandsListLimit         = 100
	recentPartnershipsShown = 5
)

func (m *MainModel) loadBrands() {
	brands, err := m.brands.List(brandsListLimit)
	if err != nil {
		logger.Logger.Printf("Failed to list brands: %v", err)
		brands = nil
	}
	m.brandRows = brands

	m.brandCounts = make(map[string]int64, len(brands))
	for _, brand := range brands {
		count, err := m.partnerships.CountForBrand(brand.Handle)
		if err != nil {
			logger.Logger.Printf("Failed to count partnerships for %s: %v", brand.Handle, err)
			continue
		}
		m.brandCounts[brand.Handle] = count
	}

	recent, err := m.partnerships.ListRecent(recentPartnershipsShown)
	if err != nil {
		logger.Logger.Printf("Failed to list recent partnerships: %v", err)
		recent = nil
	}
	m.recentPartnerships = recent

	m.updateBrandsTable()
}

func (m *MainModel) HandleBrandsUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.brandsTable.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.brandsTable.MoveDown(1)
			return m, nil
		case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Select):
			row := m.brandsTable.SelectedRow()
			if row != nil {
				url := utils.ProfileURL("instagram", row[0])
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

func (m *MainModel) RenderBrandsMenu() string {
	var sb strings.Builder

	title := fmt.Sprintf("Detected brands (%d)", len(m.brandRows))
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render(title) + "\n")
	sb.WriteString(m.brandsTable.View() + "\n")

	if len(m.recentPartnerships) > 0 {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		sb.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c2e7")).Render("Recent partnerships") + "\n")
		for _, p := range m.recentPartnerships {
			line := fmt.Sprintf("  @%s x @%s via #%s", p.CreatorHandle, p.BrandHandle, p.DiscoveredViaHashtag)
			sb.WriteString(dimStyle.Render(line) + "\n")
		}
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

func (m *MainModel) updateBrandsTable() {
	columns := []table.Column{
		{Title: "Handle", Width: 22},
		{Title: "Name", Width: 20},
		{Title: "Followers", Width: 10},
		{Title: "Partnerships", Width: 12},
		{Title: "Verified", Width: 8},
	}

	tableHeight := m.height - 14
	if tableHeight < 5 {
		tableHeight = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(brandTableRows(m.brandRows, m.brandCounts)),
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

	m.brandsTable = t
}

func brandTableRows(brands []models.Brand, partnershipCounts map[string]int64) []table.Row {
	rows := make([]table.Row, len(brands))
	for i, brand := range brands {
		verified := "no"
		if brand.IsVerified {
			verified = "yes"
		}
		rows[i] = table.Row{
			brand.Handle,
			brand.BrandName,
			fmt.Sprintf("%d", brand.FollowerCount),
			fmt.Sprintf("%d", partnershipCounts[brand.Handle]),
			verified,
		}
	}
	return rows
}
