package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/core"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/db/service"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/notifications"
	"github.com/okabrink/creator-scout/posts"
)

const refreshBatchLimit = 10

// RefreshService periodically re-enriches creators whose engagement data
// has gone stale. State survives restarts through a small JSON file in the
// config directory.
type RefreshService struct {
	cfg       *config.Config
	enricher  *core.Enricher
	creators  *service.CreatorService
	notifier  *notifications.NotificationService
	statePath string
	mu        sync.Mutex
	state     refreshState
	stopChan  chan struct{}
	running   bool
}

type refreshState struct {
	LastRunAt time.Time `json:"last_run_at"`
	Refreshed int       `json:"refreshed"`
}

func NewRefreshService(cfg *config.Config, client *apify.Client, database *db.Database) *RefreshService {
	return &RefreshService{
		cfg:       cfg,
		enricher:  core.NewEnricher(cfg, client, database),
		creators:  service.NewCreatorService(repository.NewCreatorRepository(database.DB)),
		notifier:  notifications.NewNotificationService(cfg),
		statePath: config.RefreshStatePath(),
		stopChan:  make(chan struct{}),
	}
}

// Start launches the refresh loop in a goroutine. The first pass runs
// immediately if the saved state says an interval has already elapsed.
func (rs *RefreshService) Start(ctx context.Context) {
	rs.mu.Lock()
	if rs.running {
		rs.mu.Unlock()
		return
	}
	rs.running = true
	rs.stopChan = make(chan struct{})
	rs.mu.Unlock()

	rs.loadState()
	go rs.loop(ctx)
	logger.Logger.Printf("Refresh service started (interval %dh, stale after %dd)",
		rs.cfg.Refresh.IntervalHours, rs.cfg.Refresh.StaleAfterDays)
}

func (rs *RefreshService) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.running {
		return
	}
	rs.running = false
	close(rs.stopChan)
}

func (rs *RefreshService) loop(ctx context.Context) {
	interval := time.Duration(rs.cfg.Refresh.IntervalHours) * time.Hour

	rs.mu.Lock()
	elapsed := time.Since(rs.state.LastRunAt)
	rs.mu.Unlock()

	wait := interval - elapsed
	if wait < 0 {
		wait = 0
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			rs.runOnce(ctx)
			timer.Reset(interval)
		case <-rs.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// runOnce re-enriches up to refreshBatchLimit stale creators per platform.
func (rs *RefreshService) runOnce(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -rs.cfg.Refresh.StaleAfterDays)
	refreshed := 0

	for _, platform := range []posts.Platform{posts.PlatformInstagram, posts.PlatformTikTok} {
		stale, err := rs.creators.FindStale(platform, cutoff, refreshBatchLimit)
		if err != nil {
			logger.Logger.Printf("Refresh: failed to list stale %s creators: %v", platform, err)
			continue
		}
		for _, creator := range stale {
			select {
			case <-rs.stopChan:
				return
			case <-ctx.Done():
				return
			default:
			}

			if _, err := rs.enricher.EnrichCreator(ctx, creator.Handle, platform, nil); err != nil {
				logger.Logger.Printf("Refresh: failed to re-enrich %s: %v", creator.Handle, err)
				continue
			}
			refreshed++
		}
	}

	rs.mu.Lock()
	rs.state.LastRunAt = time.Now()
	rs.state.Refreshed += refreshed
	rs.mu.Unlock()
	rs.saveState()

	logger.Logger.Printf("Refresh pass complete, %d creators re-enriched", refreshed)
	if refreshed > 0 {
		rs.notifier.NotifyRunComplete("Refresh complete",
			fmt.Sprintf("Re-enriched %d stale creators", refreshed))
	}
}

func (rs *RefreshService) loadState() {
	data, err := os.ReadFile(rs.statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Logger.Printf("Error loading refresh state: %v", err)
		}
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := json.Unmarshal(data, &rs.state); err != nil {
		logger.Logger.Printf("Error unmarshaling refresh state: %v", err)
	}
}

func (rs *RefreshService) saveState() {
	rs.mu.Lock()
	data, err := json.Marshal(rs.state)
	rs.mu.Unlock()
	if err != nil {
		logger.Logger.Printf("Error marshaling refresh state: %v", err)
		return
	}

	perm := os.FileMode(0644)
	if runtime.GOOS == "windows" {
		perm = 0666
	}

	if err := os.WriteFile(rs.statePath, data, perm); err != nil {
		logger.Logger.Printf("Error saving refresh state: %v", err)
	}
}
