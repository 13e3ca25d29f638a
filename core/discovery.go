package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/db/service"
	"github.com/okabrink/creator-scout/detect"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/notifications"
	"github.com/okabrink/creator-scout/posts"
)

const (
	profileBatchSize   = 50
	saveBatchSize      = 3
	profileConcurrency = 2
)

// Discoverer drives the hashtag discovery pipeline: scrape posts, detect
// sponsorships, scrape the involved profiles, persist everything.
type Discoverer struct {
	cfg          *config.Config
	client       *apify.Client
	creators     *service.CreatorService
	brands       *service.BrandService
	partnerships *service.PartnershipService
	runs         repository.RunRepository
	notifier     *notifications.NotificationService
}

func NewDiscoverer(cfg *config.Config, client *apify.Client, database *db.Database, notifier *notifications.NotificationService) *Discoverer {
	return &Discoverer{
		cfg:          cfg,
		client:       client,
		creators:     service.NewCreatorService(repository.NewCreatorRepository(database.DB)),
		brands:       service.NewBrandService(repository.NewBrandRepository(database.DB)),
		partnerships: service.NewPartnershipService(repository.NewPartnershipRepository(database.DB)),
		runs:         repository.NewRunRepository(database.DB),
		notifier:     notifier,
	}
}

// DiscoveryOptions configures a single run. Progress, when set, receives
// human-readable stage messages.
type DiscoveryOptions struct {
	Hashtags          []string
	ResultsPerHashtag int
	MinFollowers      int
	MaxFollowers      int
	NicheKeywords     []string
	Progress          func(string)
}

// DiscoveryReport summarizes a finished run.
type DiscoveryReport struct {
	RunUID            string
	PostsFound        int
	SponsoredPosts    int
	UniqueHandles     int
	ProfilesScraped   int
	Creators          BatchResult
	BrandsDetected    int
	BrandsSaved       int
	PartnershipsFound int
	PartnershipsSaved int
}

func (d *Discoverer) report(opts DiscoveryOptions, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Logger.Printf("[discovery] %s", msg)
	if opts.Progress != nil {
		opts.Progress(msg)
	}
}

// Run executes the full discovery pipeline. Individual save failures are
// counted and skipped; only scrape-level failures abort the run.
func (d *Discoverer) Run(ctx context.Context, opts DiscoveryOptions) (*DiscoveryReport, error) {
	if len(opts.Hashtags) == 0 {
		return nil, fmt.Errorf("at least one hashtag is required")
	}
	if opts.ResultsPerHashtag <= 0 {
		opts.ResultsPerHashtag = d.cfg.Options.ResultsPerHashtag
	}

	runRecord := &models.DiscoveryRun{
		RunUID:            uuid.NewString(),
		Hashtags:          opts.Hashtags,
		ResultsPerHashtag: opts.ResultsPerHashtag,
		MinFollowers:      opts.MinFollowers,
		MaxFollowers:      opts.MaxFollowers,
		StartedAt:         time.Now(),
	}
	if err := d.runs.Create(runRecord); err != nil {
		logger.Logger.Printf("Failed to record discovery run: %v", err)
	}

	// Stage 1: hashtag posts
	d.report(opts, "Scraping hashtags %v...", opts.Hashtags)
	run, err := d.client.StartHashtagScrape(ctx, opts.Hashtags, opts.ResultsPerHashtag)
	if err != nil {
		return nil, fmt.Errorf("failed to start hashtag scraper: %w", err)
	}
	run, err = d.client.WaitForRun(ctx, run.ID, "Scraping hashtag posts")
	if err != nil {
		return nil, fmt.Errorf("hashtag scraping failed: %w", err)
	}

	batch, err := d.fetchInstagramPosts(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}

	batch = posts.FilterByKeywords(batch, opts.NicheKeywords)

	// Stage 2: per-post detection and partnership synthesis
	var allPartnerships []detect.Partnership
	brandSet := make(map[string]bool)
	var brandHandles []string
	sponsoredPosts := 0

	for i := range batch {
		result := detect.Annotate(&batch[i])
		if !result.Sponsored || len(result.BrandHandles) == 0 {
			continue
		}
		sponsoredPosts++
		via := sourceHashtag(batch[i], opts.Hashtags)
		allPartnerships = append(allPartnerships, detect.PartnershipRecords(batch[i], result, via)...)
		for _, handle := range result.BrandHandles {
			if !brandSet[handle] {
				brandSet[handle] = true
				brandHandles = append(brandHandles, handle)
			}
		}
	}

	handles := uniqueOwnerHandles(batch)
	d.report(opts, "Found %d posts from %d creators (%d sponsored)", len(batch), len(handles), sponsoredPosts)

	// Stage 3: creator profiles
	profiles := d.scrapeProfiles(ctx, opts, handles)

	filtered := filterFollowerRange(profiles, opts.MinFollowers, opts.MaxFollowers)
	d.report(opts, "Scraped %d profiles, %d in follower range", len(profiles), len(filtered))

	// Stage 4: persist creators in small batches
	bar := progressbar.NewOptions(len(filtered),
		progressbar.OptionSetDescription("Saving creators"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	creatorResult := SaveInBatches(filtered, saveBatchSize, func(chunk []posts.CreatorProfile) BatchResult {
		var r BatchResult
		for _, profile := range chunk {
			if err := d.creators.SaveProfile(profile, posts.PlatformInstagram, opts.Hashtags); err != nil {
				logger.Logger.Printf("Failed to save creator %s: %v", profile.Handle, err)
				r.Failed++
				continue
			}
			r.Saved++
		}
		bar.Add(len(chunk))
		return r
	})
	bar.Finish()

	// Stage 5: brand profiles and partnerships
	brandsSaved := 0
	partnershipsSaved := 0
	if len(brandHandles) > 0 {
		// Skip profile scrapes for brands already on file; the handles
		// still feed partnership rows below.
		newBrands := make([]string, 0, len(brandHandles))
		for _, handle := range brandHandles {
			if d.brands.IsKnown(handle) {
				continue
			}
			newBrands = append(newBrands, handle)
		}
		if known := len(brandHandles) - len(newBrands); known > 0 {
			d.report(opts, "%d of %d brands already saved", known, len(brandHandles))
		}

		if len(newBrands) > 0 {
			d.report(opts, "Scraping %d brand profiles...", len(newBrands))
			for _, profile := range d.scrapeProfiles(ctx, opts, newBrands) {
				if err := d.brands.SaveBrand(profile); err != nil {
					logger.Logger.Printf("Failed to save brand %s: %v", profile.Handle, err)
					continue
				}
				brandsSaved++
			}
		}
		partnershipsSaved = d.partnerships.SaveAll(allPartnerships)
	}

	report := &DiscoveryReport{
		RunUID:            runRecord.RunUID,
		PostsFound:        len(batch),
		SponsoredPosts:    sponsoredPosts,
		UniqueHandles:     len(handles),
		ProfilesScraped:   len(profiles),
		Creators:          creatorResult,
		BrandsDetected:    len(brandHandles),
		BrandsSaved:       brandsSaved,
		PartnershipsFound: len(allPartnerships),
		PartnershipsSaved: partnershipsSaved,
	}

	completed := time.Now()
	runRecord.PostsFound = report.PostsFound
	runRecord.UniqueHandles = report.UniqueHandles
	runRecord.ProfilesScraped = report.ProfilesScraped
	runRecord.CreatorsSaved = report.Creators.Saved
	runRecord.CreatorsFailed = report.Creators.Failed
	runRecord.BrandsSaved = report.BrandsSaved
	runRecord.PartnershipsSaved = report.PartnershipsSaved
	runRecord.CompletedAt = &completed
	if err := d.runs.Update(runRecord); err != nil {
		logger.Logger.Printf("Failed to update discovery run: %v", err)
	}

	d.report(opts, "Discovery complete: %d creators saved, %d partnerships logged", report.Creators.Saved, report.PartnershipsSaved)
	if d.notifier != nil {
		d.notifier.NotifyRunComplete("Discovery complete",
			fmt.Sprintf("%v: %d creators saved, %d brands, %d partnerships",
				opts.Hashtags, report.Creators.Saved, report.BrandsSaved, report.PartnershipsSaved))
	}

	return report, nil
}

func (d *Discoverer) fetchInstagramPosts(ctx context.Context, datasetID string) ([]posts.Post, error) {
	items, err := d.client.DatasetItems(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hashtag results: %w", err)
	}

	batch := make([]posts.Post, 0, len(items))
	for _, item := range items {
		var raw posts.RawInstagramPost
		if err := json.Unmarshal(item, &raw); err != nil {
			logger.Logger.Printf("Skipping undecodable post item: %v", err)
			continue
		}
		batch = append(batch, posts.MapInstagramPost(raw))
	}
	return batch, nil
}

// scrapeProfiles fetches profiles for the given handles in parallel
// batches. A failed batch is logged and dropped; the rest continue.
func (d *Discoverer) scrapeProfiles(ctx context.Context, opts DiscoveryOptions, handles []string) []posts.CreatorProfile {
	chunks := chunkStrings(handles, profileBatchSize)
	results := make([][]posts.CreatorProfile, len(chunks))

	var g errgroup.Group
	g.SetLimit(profileConcurrency)
	var mu sync.Mutex
	completed := 0

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			run, err := d.client.StartProfileScrape(ctx, chunk)
			if err == nil {
				run, err = d.client.WaitForRun(ctx, run.ID, "")
			}
			if err != nil {
				logger.Logger.Printf("Profile batch %d/%d failed: %v", i+1, len(chunks), err)
				return nil
			}

			items, err := d.client.DatasetItems(ctx, run.DefaultDatasetID)
			if err != nil {
				logger.Logger.Printf("Failed to fetch profile batch %d/%d: %v", i+1, len(chunks), err)
				return nil
			}

			profiles := make([]posts.CreatorProfile, 0, len(items))
			for _, item := range items {
				var raw posts.RawProfile
				if err := json.Unmarshal(item, &raw); err != nil {
					logger.Logger.Printf("Skipping undecodable profile item: %v", err)
					continue
				}
				profiles = append(profiles, posts.MapProfile(raw))
			}
			results[i] = profiles

			mu.Lock()
			completed++
			d.report(opts, "Scraping profiles (batch %d/%d)...", completed, len(chunks))
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var all []posts.CreatorProfile
	for _, profiles := range results {
		all = append(all, profiles...)
	}
	return all
}

// sourceHashtag attributes a post to the scraped hashtag it carries. When
// the post carries several, the first requested one wins; a post carrying
// none falls back to the first requested hashtag.
func sourceHashtag(post posts.Post, hashtags []string) string {
	carried := make(map[string]bool, len(post.Hashtags))
	for _, tag := range post.Hashtags {
		carried[strings.ToLower(tag)] = true
	}
	for _, tag := range hashtags {
		if carried[strings.ToLower(tag)] {
			return tag
		}
	}
	return hashtags[0]
}

func uniqueOwnerHandles(batch []posts.Post) []string {
	seen := make(map[string]bool, len(batch))
	handles := make([]string, 0, len(batch))
	for _, p := range batch {
		handle := posts.NormalizeHandle(p.OwnerHandle)
		if handle != "" && !seen[handle] {
			seen[handle] = true
			handles = append(handles, handle)
		}
	}
	return handles
}
