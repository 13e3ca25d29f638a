package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okabrink/creator-scout/core"
	"github.com/okabrink/creator-scout/posts"
)

// startDiscovery kicks off a discovery run in the background and switches
// to the progress view. Stage messages arrive over progressCh.
func (m *MainModel) startDiscovery(hashtags []string) (tea.Model, tea.Cmd) {
	m.runTitle = fmt.Sprintf("Discovering creators for %s", strings.Join(hashtags, ", "))
	m.progressLines = nil
	m.progressCh = make(chan string, 16)
	m.resultCh = make(chan tea.Msg, 1)
	m.state = RunProgressState

	progressCh, resultCh := m.progressCh, m.resultCh
	opts := core.DiscoveryOptions{
		Hashtags:          hashtags,
		ResultsPerHashtag: m.cfg.Options.ResultsPerHashtag,
		MinFollowers:      m.cfg.Options.MinFollowers,
		MaxFollowers:      m.cfg.Options.MaxFollowers,
		NicheKeywords:     m.cfg.Discovery.NicheKeywords,
		Progress:          func(msg string) { progressCh <- msg },
	}

	go func() {
		report, err := m.discoverer.Run(context.Background(), opts)
		if err != nil {
			resultCh <- runErrorMsg{err: err}
		} else {
			resultCh <- runCompleteMsg{summary: fmt.Sprintf(
				"Saved %d creators, %d brands and %d partnerships from %d posts.",
				report.Creators.Saved, report.BrandsSaved, report.PartnershipsSaved, report.PostsFound)}
		}
		close(progressCh)
	}()

	return m, m.listenProgress()
}

// startEnrichment kicks off an enrichment run for one creator.
func (m *MainModel) startEnrichment(handle string, platform posts.Platform) (tea.Model, tea.Cmd) {
	m.runTitle = fmt.Sprintf("Enriching @%s (%s)", handle, platform)
	m.progressLines = nil
	m.progressCh = make(chan string, 16)
	m.resultCh = make(chan tea.Msg, 1)
	m.state = RunProgressState

	progressCh, resultCh := m.progressCh, m.resultCh

	go func() {
		report, err := m.enricher.EnrichCreator(context.Background(), handle, platform,
			func(msg string) { progressCh <- msg })
		if err != nil {
			resultCh <- runErrorMsg{err: err}
		} else if report.Summary != nil {
			resultCh <- runCompleteMsg{summary: fmt.Sprintf(
				"@%s: %.2f%% engagement, %d posts saved.",
				report.Handle, report.Summary.CalculatedEngagementRate, report.PostsSaved)}
		} else {
			resultCh <- runCompleteMsg{summary: fmt.Sprintf("@%s: no posts found.", report.Handle)}
		}
		close(progressCh)
	}()

	return m, m.listenProgress()
}

// listenProgress waits for the next stage message, or the final result once
// the progress channel closes.
func (m *MainModel) listenProgress() tea.Cmd {
	progressCh, resultCh := m.progressCh, m.resultCh
	return func() tea.Msg {
		msg, ok := <-progressCh
		if !ok {
			return <-resultCh
		}
		return runProgressMsg(msg)
	}
}

func (m *MainModel) HandleRunProgressUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *MainModel) RenderRunProgress() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Render(m.runTitle) + "\n\n")
	for _, line := range m.progressLines {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("Working, this can take a few minutes..."))

	return sb.String()
}
