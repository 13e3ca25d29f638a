package ui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/core"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/notifications"
	"github.com/okabrink/creator-scout/posts"
	"github.com/okabrink/creator-scout/service"
)

type AppState int

const (
	MainMenuState AppState = iota
	HashtagInputState
	HandleInputState
	RunProgressState
	CreatorsState
	BrandsState
	StatsState
	CompletionState
)

type MainModel struct {
	version   string
	quit      bool
	cursorPos int
	selected  string
	options   []string
	state     AppState

	keys   keyMap
	help   help.Model
	width  int
	height int

	cfg          *config.Config
	discoverer   *core.Discoverer
	enricher     *core.Enricher
	stats        *core.StatsService
	creators     repository.CreatorRepository
	brands       repository.BrandRepository
	partnerships repository.PartnershipRepository
	refresh      *service.RefreshService
	refreshOn    bool

	hashtagInput   textinput.Model
	handleInput    textinput.Model
	enrichPlatform posts.Platform

	runTitle      string
	progressLines []string
	progressCh    chan string
	resultCh      chan tea.Msg

	creatorRows []models.Creator
	table       table.Model

	brandRows          []models.Brand
	brandCounts        map[string]int64
	recentPartnerships []models.Partnership
	brandsTable        table.Model

	statsData core.Stats
	message   string
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Help   key.Binding
	Quit   key.Binding
	Back   key.Binding
	Select key.Binding
	Open   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Back},
		{k.Down, k.Select},
		{k.Help, k.Open},
		{k.Quit},
	}
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to menu"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open profile"),
	),
}

func NewMainModel(cfg *config.Config, client *apify.Client, database *db.Database, refresh *service.RefreshService, version string) *MainModel {
	hashtagInput := textinput.New()
	hashtagInput.Placeholder = "fitness, veganfood"
	hashtagInput.CharLimit = 200
	hashtagInput.Width = 50

	handleInput := textinput.New()
	handleInput.Placeholder = "creator handle"
	handleInput.CharLimit = 100
	handleInput.Width = 50

	return &MainModel{
		version: version,
		options: []string{
			"Discover creators by hashtag",
			"Enrich a creator's engagement",
			"Browse saved creators",
			"Browse detected brands",
			"View database stats",
			"Toggle background refresh",
			"Edit config.toml file",
			"Quit",
		},
		cursorPos:      0,
		keys:           defaultKeyMap,
		help:           help.New(),
		state:          MainMenuState,
		cfg:            cfg,
		discoverer:     core.NewDiscoverer(cfg, client, database, notifications.NewNotificationService(cfg)),
		enricher:       core.NewEnricher(cfg, client, database),
		stats:          core.NewStatsService(database),
		creators:       repository.NewCreatorRepository(database.DB),
		brands:         repository.NewBrandRepository(database.DB),
		partnerships:   repository.NewPartnershipRepository(database.DB),
		refresh:        refresh,
		hashtagInput:   hashtagInput,
		handleInput:    handleInput,
		enrichPlatform: posts.PlatformInstagram,
	}
}

func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-c
				os.Exit(0)
			}()
			return nil
		},
	)
}

func (m *MainModel) Reset() {
	m.cursorPos = 0
	m.selected = ""
	m.state = MainMenuState
}
