package cmd

import (
	"context"
	"fmt"
	"os"

	ksvc "github.com/kardianos/service"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/service"
)

type Program struct {
	refreshService *service.RefreshService
	cancel         context.CancelFunc
}

func (p *Program) Start(s ksvc.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.refreshService.Start(ctx)
	return nil
}

func (p *Program) Stop(s ksvc.Service) error {
	p.refreshService.Stop()
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// RunService installs or controls the background refresh service through the
// system service manager. Supported actions: install, uninstall, start,
// stop, restart, run.
func RunService() {
	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	if err := logger.InitLogger(cfg); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}

	database, err := db.NewDatabase(config.DatabasePath(cfg))
	if err != nil {
		fmt.Printf("Error initializing database: %v\n", err)
		return
	}

	client := apify.NewClient(cfg.Apify.Token, cfg.Apify.BaseURL)
	refreshService := service.NewRefreshService(cfg, client, database)

	prg := &Program{
		refreshService: refreshService,
	}

	svcConfig := &ksvc.Config{
		Name:        "CreatorScout",
		DisplayName: "Creator Scout Refresh Service",
		Description: "Periodically refreshes engagement data for stale creators.",
		Arguments:   []string{"service", "run"},
	}

	s, err := ksvc.New(prg, svcConfig)
	if err != nil {
		logger.Logger.Printf("Error creating service: %v", err)
		return
	}

	action := ""
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "service" && i+1 < len(args) {
			action = args[i+1]
			break
		}
	}

	switch action {
	case "install", "uninstall", "start", "stop", "restart":
		if err := ksvc.Control(s, action); err != nil {
			fmt.Printf("Error running service action %s: %v\n", action, err)
			return
		}
		fmt.Printf("Service action %s completed.\n", action)
	case "run", "":
		if err := s.Run(); err != nil {
			logger.Logger.Printf("Service run error: %v", err)
		}
	default:
		fmt.Println("Usage: creator-scout service [install|uninstall|start|stop|restart|run]")
	}
}
