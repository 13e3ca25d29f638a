package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/db/service"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/posts"
)

// Importer loads creator profiles from Apify datasets that already exist,
// for profile-scraper runs started outside this tool.
type Importer struct {
	cfg      *config.Config
	client   *apify.Client
	creators *service.CreatorService
	runs     repository.RunRepository
}

func NewImporter(cfg *config.Config, client *apify.Client, database *db.Database) *Importer {
	return &Importer{
		cfg:      cfg,
		client:   client,
		creators: service.NewCreatorService(repository.NewCreatorRepository(database.DB)),
		runs:     repository.NewRunRepository(database.DB),
	}
}

// ImportOptions configures a single import.
type ImportOptions struct {
	DatasetIDs   []string
	MinFollowers int
	MaxFollowers int
	Progress     func(string)
}

// ImportReport summarizes a finished import.
type ImportReport struct {
	RunUID          string
	ProfilesFetched int
	UniqueProfiles  int
	InRange         int
	Creators        BatchResult
}

// Run fetches every dataset, dedupes profiles by handle, applies the
// follower range, and saves the remainder as creators. A dataset that
// cannot be fetched is logged and skipped; the rest continue.
func (im *Importer) Run(ctx context.Context, opts ImportOptions) (*ImportReport, error) {
	if len(opts.DatasetIDs) == 0 {
		return nil, fmt.Errorf("at least one dataset ID is required")
	}

	started := time.Now()
	report := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		logger.Logger.Printf("[import] %s", msg)
		if opts.Progress != nil {
			opts.Progress(msg)
		}
	}

	var profiles []posts.CreatorProfile
	fetched := 0
	for _, datasetID := range opts.DatasetIDs {
		items, err := im.client.DatasetItems(ctx, datasetID)
		if err != nil {
			logger.Logger.Printf("Failed to fetch dataset %s: %v", datasetID, err)
			report("Skipping dataset %s: %v", datasetID, err)
			continue
		}
		fetched += len(items)
		report("Fetched %d items from dataset %s", len(items), datasetID)

		for _, item := range items {
			var raw posts.RawProfile
			if err := json.Unmarshal(item, &raw); err != nil {
				logger.Logger.Printf("Skipping undecodable profile item: %v", err)
				continue
			}
			profile := posts.MapProfile(raw)
			if profile.Handle == "" {
				continue
			}
			profiles = append(profiles, profile)
		}
	}

	unique := dedupeProfiles(profiles)
	filtered := filterFollowerRange(unique, opts.MinFollowers, opts.MaxFollowers)
	report("%d profiles fetched, %d unique, %d in follower range", fetched, len(unique), len(filtered))

	result := SaveInBatches(filtered, saveBatchSize, func(chunk []posts.CreatorProfile) BatchResult {
		var r BatchResult
		for _, profile := range chunk {
			if err := im.creators.SaveProfile(profile, posts.PlatformInstagram, []string{"imported"}); err != nil {
				logger.Logger.Printf("Failed to save imported creator %s: %v", profile.Handle, err)
				r.Failed++
				continue
			}
			r.Saved++
		}
		return r
	})

	completed := time.Now()
	runRecord := &models.DiscoveryRun{
		RunUID:          uuid.NewString(),
		Hashtags:        []string{"imported"},
		MinFollowers:    opts.MinFollowers,
		MaxFollowers:    opts.MaxFollowers,
		UniqueHandles:   len(unique),
		ProfilesScraped: fetched,
		CreatorsSaved:   result.Saved,
		CreatorsFailed:  result.Failed,
		StartedAt:       started,
		CompletedAt:     &completed,
	}
	if err := im.runs.Create(runRecord); err != nil {
		logger.Logger.Printf("Failed to record import run: %v", err)
	}

	report("Import complete: %d creators saved (%d failed)", result.Saved, result.Failed)
	return &ImportReport{
		RunUID:          runRecord.RunUID,
		ProfilesFetched: fetched,
		UniqueProfiles:  len(unique),
		InRange:         len(filtered),
		Creators:        result,
	}, nil
}

// dedupeProfiles keeps one profile per handle. A later duplicate replaces
// the earlier one, so passing dataset IDs oldest-first makes the freshest
// data win.
func dedupeProfiles(profiles []posts.CreatorProfile) []posts.CreatorProfile {
	index := make(map[string]int, len(profiles))
	unique := make([]posts.CreatorProfile, 0, len(profiles))
	for _, p := range profiles {
		if i, ok := index[p.Handle]; ok {
			unique[i] = p
			continue
		}
		index[p.Handle] = len(unique)
		unique = append(unique, p)
	}
	return unique
}

// filterFollowerRange keeps profiles whose follower count falls inside the
// inclusive range.
func filterFollowerRange(profiles []posts.CreatorProfile, min, max int) []posts.CreatorProfile {
	filtered := make([]posts.CreatorProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.FollowerCount >= min && p.FollowerCount <= max {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
