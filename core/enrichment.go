package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okabrink/creator-scout/apify"
	"github.com/okabrink/creator-scout/config"
	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/db/service"
	"github.com/okabrink/creator-scout/detect"
	"github.com/okabrink/creator-scout/enrich"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/posts"
)

// Enricher pulls a creator's recent posts and computes engagement metrics
// from them.
type Enricher struct {
	cfg      *config.Config
	client   *apify.Client
	creators *service.CreatorService
	posts    *service.PostService
}

func NewEnricher(cfg *config.Config, client *apify.Client, database *db.Database) *Enricher {
	return &Enricher{
		cfg:      cfg,
		client:   client,
		creators: service.NewCreatorService(repository.NewCreatorRepository(database.DB)),
		posts:    service.NewPostService(repository.NewPostRepository(database.DB)),
	}
}

// EnrichmentReport summarizes a single creator enrichment.
type EnrichmentReport struct {
	Handle      string
	Platform    posts.Platform
	PostsFound  int
	PostsSaved  int
	PostsFailed int
	Summary     *enrich.Summary
}

// EnrichCreator scrapes the creator's recent posts, stores them, and writes
// the computed engagement summary back onto the creator record. The creator
// must already exist in the database.
func (e *Enricher) EnrichCreator(ctx context.Context, handle string, platform posts.Platform, progress func(string)) (*EnrichmentReport, error) {
	handle = posts.NormalizeHandle(handle)
	if handle == "" {
		return nil, fmt.Errorf("handle is required")
	}

	creator, err := e.creators.FindByHandle(platform, handle)
	if err != nil {
		return nil, fmt.Errorf("creator %s not found on %s, run discovery first: %w", handle, platform, err)
	}

	report := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		logger.Logger.Printf("[enrich] %s", msg)
		if progress != nil {
			progress(msg)
		}
	}

	limit := e.cfg.Options.PostsPerCreator
	report("Scraping up to %d posts for %s...", limit, handle)

	var run apify.Run
	switch platform {
	case posts.PlatformTikTok:
		run, err = e.client.StartTikTokPostScrape(ctx, handle, limit)
	default:
		run, err = e.client.StartInstagramPostScrape(ctx, handle, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start post scraper: %w", err)
	}
	run, err = e.client.WaitForRun(ctx, run.ID, "Scraping posts")
	if err != nil {
		return nil, fmt.Errorf("post scraping failed: %w", err)
	}

	items, err := e.client.DatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post results: %w", err)
	}

	batch := make([]posts.Post, 0, len(items))
	for _, item := range items {
		post, ok := decodePost(platform, item)
		if !ok {
			continue
		}
		if post.OwnerHandle == "" {
			post.OwnerHandle = handle
		}
		if !post.HasIdentity() {
			continue
		}
		detect.Annotate(&post)
		batch = append(batch, post)
		if len(batch) >= limit {
			break
		}
	}
	report("Fetched %d posts", len(batch))

	saveResult := SaveInBatches(batch, saveBatchSize, func(chunk []posts.Post) BatchResult {
		var r BatchResult
		for _, post := range chunk {
			if err := e.posts.SavePost(post); err != nil {
				logger.Logger.Printf("Failed to save post %s: %v", post.ID, err)
				r.Failed++
				continue
			}
			r.Saved++
		}
		return r
	})

	summary := enrich.Calculate(batch, creator.FollowerCount)
	if summary != nil {
		if err := e.creators.ApplyEnrichment(creator, summary, len(batch)); err != nil {
			return nil, fmt.Errorf("failed to store enrichment for %s: %w", handle, err)
		}
		report("Enriched %s: %.2f%% engagement over %d posts", handle, summary.CalculatedEngagementRate, len(batch))
	} else {
		report("No posts found for %s, nothing to enrich", handle)
	}

	return &EnrichmentReport{
		Handle:      handle,
		Platform:    platform,
		PostsFound:  len(batch),
		PostsSaved:  saveResult.Saved,
		PostsFailed: saveResult.Failed,
		Summary:     summary,
	}, nil
}

func decodePost(platform posts.Platform, item json.RawMessage) (posts.Post, bool) {
	switch platform {
	case posts.PlatformTikTok:
		var raw posts.RawTikTokPost
		if err := json.Unmarshal(item, &raw); err != nil {
			logger.Logger.Printf("Skipping undecodable tiktok post: %v", err)
			return posts.Post{}, false
		}
		return posts.MapTikTokPost(raw), true
	default:
		var raw posts.RawInstagramPost
		if err := json.Unmarshal(item, &raw); err != nil {
			logger.Logger.Printf("Skipping undecodable instagram post: %v", err)
			return posts.Post{}, false
		}
		return posts.MapInstagramPost(raw), true
	}
}
