package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/cmd"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/core"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/notifications"
	"github.com/okabrink/creator-scout/posts"
	"github.com/okabrink/creator-scout/service"
	"github.com/okabrink/creator-scout/ui"
	"github.com/okabrink/creator-scout/updater"
)

const version = "v0.3.1"

func main() {
	flags, subcommand := cmd.ParseFlags()

	if flags.Version {
		fmt.Printf("Creator Scout version %s\n", version)
		return
	}

	config.VerifyConfigOnStartup()

	configPath := config.GetConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		fmt.Printf("Edit %s and set your Apify token and save location.\n", configPath)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg); err != nil {
		log.Fatal(err)
	}

	switch subcommand {
	case "update":
		if err := updater.CheckForUpdate(version); err != nil {
			fmt.Printf("Error updating: %v\n", err)
			os.Exit(1)
		}
		return
	case "service":
		cmd.RunService()
		return
	case "refresh":
		switch flags.RefreshCommand {
		case "start":
			startRefresh(cfg)
		case "stop":
			stopRefresh()
		default:
			fmt.Println("Usage: creator-scout refresh [start|stop]")
		}
		return
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Println("Received interrupt signal. Shutting down...")
		os.Exit(0)
	}()

	if cfg.Options.CheckUpdates {
		logger.Logger.Printf("Update checks enabled. Current version: %s", version)
	}

	logger.Logger.Printf("Starting Creator Scout version %s", version)

	if flags.Limit > 0 {
		cfg.Options.ResultsPerHashtag = flags.Limit
		logger.Logger.Printf("Overriding config: results per hashtag set to %d", flags.Limit)
	}

	database, err := db.NewDatabase(config.DatabasePath(cfg))
	if err != nil {
		logger.Logger.Fatal(err)
	}
	defer database.Close()

	client := apify.NewClient(cfg.Apify.Token, cfg.Apify.BaseURL)

	if flags.Stats {
		runStatsMode(database)
		return
	}

	if flags.Hashtags != "" {
		runDiscoveryMode(cfg, client, database, flags.Hashtags)
		return
	}

	if flags.Enrich != "" {
		runEnrichMode(cfg, client, database, flags.Enrich, flags.Platform)
		return
	}

	if flags.Import != "" {
		runImportMode(cfg, client, database, flags.Import)
		return
	}

	refreshService := service.NewRefreshService(cfg, client, database)
	model := ui.NewMainModel(cfg, client, database, refreshService, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func runDiscoveryMode(cfg *config.Config, client *apify.Client, database *db.Database, hashtagArg string) {
	var hashtags []string
	for _, part := range strings.Split(hashtagArg, ",") {
		tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if tag != "" {
			hashtags = append(hashtags, tag)
		}
	}
	if len(hashtags) == 0 {
		fmt.Println("No valid hashtags given.")
		os.Exit(1)
	}

	notifier := notifications.NewNotificationService(cfg)
	discoverer := core.NewDiscoverer(cfg, client, database, notifier)

	report, err := discoverer.Run(context.Background(), core.DiscoveryOptions{
		Hashtags:          hashtags,
		ResultsPerHashtag: cfg.Options.ResultsPerHashtag,
		MinFollowers:      cfg.Options.MinFollowers,
		MaxFollowers:      cfg.Options.MaxFollowers,
		NicheKeywords:     cfg.Discovery.NicheKeywords,
		Progress:          func(msg string) { fmt.Println(msg) },
	})
	if err != nil {
		fmt.Printf("Discovery failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDiscovery run %s finished:\n", report.RunUID)
	fmt.Printf("  Posts found:        %d (%d sponsored)\n", report.PostsFound, report.SponsoredPosts)
	fmt.Printf("  Creators saved:     %d (%d failed)\n", report.Creators.Saved, report.Creators.Failed)
	fmt.Printf("  Brands saved:       %d of %d detected\n", report.BrandsSaved, report.BrandsDetected)
	fmt.Printf("  Partnerships saved: %d of %d found\n", report.PartnershipsSaved, report.PartnershipsFound)
}

func runEnrichMode(cfg *config.Config, client *apify.Client, database *db.Database, handle, platformArg string) {
	platform := posts.PlatformInstagram
	if strings.EqualFold(platformArg, "tiktok") {
		platform = posts.PlatformTikTok
	}

	enricher := core.NewEnricher(cfg, client, database)
	report, err := enricher.EnrichCreator(context.Background(), handle, platform,
		func(msg string) { fmt.Println(msg) })
	if err != nil {
		fmt.Printf("Enrichment failed: %v\n", err)
		os.Exit(1)
	}

	if report.Summary == nil {
		fmt.Printf("No posts found for @%s, nothing to enrich.\n", report.Handle)
		return
	}

	fmt.Printf("\nEnrichment for @%s (%s):\n", report.Handle, report.Platform)
	fmt.Printf("  Engagement rate:  %.2f%%\n", report.Summary.CalculatedEngagementRate)
	fmt.Printf("  Avg likes:        %d\n", report.Summary.AvgLikes)
	fmt.Printf("  Avg comments:     %d\n", report.Summary.AvgComments)
	fmt.Printf("  Posts per week:   %.1f\n", report.Summary.PostingFrequencyPerWeek)
	fmt.Printf("  Posts saved:      %d (%d failed)\n", report.PostsSaved, report.PostsFailed)
	if len(report.Summary.DetectedBrands) > 0 {
		fmt.Printf("  Detected brands:  %s\n", strings.Join(report.Summary.DetectedBrands, ", "))
	}
}

func runImportMode(cfg *config.Config, client *apify.Client, database *db.Database, datasetArg string) {
	var datasetIDs []string
	for _, part := range strings.Split(datasetArg, ",") {
		if id := strings.TrimSpace(part); id != "" {
			datasetIDs = append(datasetIDs, id)
		}
	}
	if len(datasetIDs) == 0 {
		fmt.Println("No valid dataset IDs given.")
		os.Exit(1)
	}

	importer := core.NewImporter(cfg, client, database)
	report, err := importer.Run(context.Background(), core.ImportOptions{
		DatasetIDs:   datasetIDs,
		MinFollowers: cfg.Options.MinFollowers,
		MaxFollowers: cfg.Options.MaxFollowers,
		Progress:     func(msg string) { fmt.Println(msg) },
	})
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nImport run %s finished:\n", report.RunUID)
	fmt.Printf("  Profiles fetched: %d (%d unique)\n", report.ProfilesFetched, report.UniqueProfiles)
	fmt.Printf("  In follower range: %d\n", report.InRange)
	fmt.Printf("  Creators saved:   %d (%d failed)\n", report.Creators.Saved, report.Creators.Failed)
}

func runStatsMode(database *db.Database) {
	stats := core.NewStatsService(database).Collect()
	fmt.Println("Database stats:")
	fmt.Printf("  Creators:        %d (%d added this week)\n", stats.TotalCreators, stats.AddedThisWeek)
	fmt.Printf("  Avg engagement:  %.2f%%\n", stats.AvgEngagement)
	if stats.TopCategory != "" {
		fmt.Printf("  Top category:    %s\n", stats.TopCategory)
	}
	fmt.Printf("  Brands:          %d\n", stats.TotalBrands)
	fmt.Printf("  Partnerships:    %d\n", stats.TotalPartnerships)
	fmt.Printf("  Posts:           %d\n", stats.TotalPosts)
	if len(stats.RecentRuns) > 0 {
		fmt.Println("  Recent runs:")
		for _, run := range stats.RecentRuns {
			fmt.Printf("    %s  %v  %d creators saved\n",
				run.StartedAt.Format("2006-01-02 15:04"), []string(run.Hashtags), run.CreatorsSaved)
		}
	}
}

func isProcessRunning(pid int) bool {
	if runtime.GOOS == "windows" {
		process, err := os.FindProcess(pid)
		if err != nil {
			return false
		}
		processState, err := process.Wait()
		return err == nil && !processState.Exited()
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}

func startRefresh(cfg *config.Config) {
	pidFile := filepath.Join(config.GetConfigDir(), "refresh.pid")

	if data, err := os.ReadFile(pidFile); err == nil {
		pid, err := strconv.Atoi(string(data))
		if err == nil && isProcessRunning(pid) {
			fmt.Println("Refresh process is already running.")
			return
		}
		os.Remove(pidFile)
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644); err != nil {
		fmt.Printf("Error writing PID file: %v\n", err)
		return
	}
	defer os.Remove(pidFile)

	fmt.Printf("Started refresh process with PID %d\n", pid)

	database, err := db.NewDatabase(config.DatabasePath(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	client := apify.NewClient(cfg.Apify.Token, cfg.Apify.BaseURL)
	refreshService := service.NewRefreshService(cfg, client, database)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refreshService.Start(ctx)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan
	fmt.Println("Received interrupt signal. Shutting down refresh...")
	refreshService.Stop()
}

func stopRefresh() {
	pidFile := filepath.Join(config.GetConfigDir(), "refresh.pid")
	data, err := os.ReadFile(pidFile)
	if err != nil {
		fmt.Println("No refresh process is running.")
		return
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		fmt.Printf("Error reading PID: %v\n", err)
		return
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Printf("Error finding process: %v\n", err)
		return
	}

	if err := process.Signal(os.Interrupt); err != nil {
		fmt.Printf("Error stopping process: %v\n", err)
		return
	}

	if err := os.Remove(pidFile); err != nil {
		fmt.Printf("Error removing PID file: %v\n", err)
		return
	}

	fmt.Println("Refresh process stopped.")
}
