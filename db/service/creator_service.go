package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/enrich"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/posts"
)

// CreatorService handles creator-related operations
type CreatorService struct {
	repo repository.CreatorRepository
}

// NewCreatorService creates a new creator service
func NewCreatorService(repo repository.CreatorRepository) *CreatorService {
	return &CreatorService{repo: repo}
}

// SaveProfile upserts a normalized profile as a creator row
func (s *CreatorService) SaveProfile(profile posts.CreatorProfile, platform posts.Platform, viaHashtags []string) error {
	if profile.Handle == "" {
		return fmt.Errorf("skipped creator with no handle")
	}

	creator := &models.Creator{
		Platform:              string(platform),
		Handle:                profile.Handle,
		FullName:              profile.FullName,
		Bio:                   profile.Bio,
		FollowerCount:         profile.FollowerCount,
		FollowingCount:        profile.FollowingCount,
		PostsCount:            profile.PostsCount,
		EngagementRate:        profile.EngagementRate,
		IsVerified:            profile.IsVerified,
		IsBusinessAccount:     profile.IsBusinessAccount,
		CategoryName:          profile.CategoryName,
		ProfileURL:            profile.ProfileURL,
		ProfilePicURL:         profile.ProfilePicURL,
		Website:               profile.Website,
		DiscoveredViaHashtags: viaHashtags,
	}

	return s.repo.Upsert(creator)
}

// FindByHandle looks up a creator by platform and handle
func (s *CreatorService) FindByHandle(platform posts.Platform, handle string) (*models.Creator, error) {
	return s.repo.FindByHandle(string(platform), posts.NormalizeHandle(handle))
}

// ApplyEnrichment replaces the creator's enrichment fields with a freshly
// computed summary. A nil summary clears them.
func (s *CreatorService) ApplyEnrichment(creator *models.Creator, summary *enrich.Summary, postsScraped int) error {
	var data string
	var rate *float64

	if summary != nil {
		encoded, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to encode enrichment data: %w", err)
		}
		data = string(encoded)
		rate = &summary.CalculatedEngagementRate
	}

	if err := s.repo.UpdateEnrichment(creator.ID, data, rate, postsScraped, time.Now()); err != nil {
		logger.Logger.Printf("Failed to save enrichment for %s: %v", creator.Handle, err)
		return err
	}
	return nil
}

// FindStale lists creators that have never been enriched or whose last
// enrichment is older than the cutoff
func (s *CreatorService) FindStale(platform posts.Platform, olderThan time.Time, limit int) ([]models.Creator, error) {
	return s.repo.FindStale(string(platform), olderThan, limit)
}
