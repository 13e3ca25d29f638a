package service

import (
	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/detect"
	"github.com/okabrink/creator-scout/logger"
)

// PartnershipService handles partnership persistence
type PartnershipService struct {
	repo repository.PartnershipRepository
}

// NewPartnershipService creates a new partnership service
func NewPartnershipService(repo repository.PartnershipRepository) *PartnershipService {
	return &PartnershipService{repo: repo}
}

// SaveAll inserts partnership records one by one, skipping duplicates via
// the conflict-ignore index. A failed record is logged and does not stop
// the rest of the batch.
func (s *PartnershipService) SaveAll(partnerships []detect.Partnership) (saved int) {
	for _, p := range partnerships {
		row := &models.Partnership{
			CreatorHandle:        p.CreatorHandle,
			BrandHandle:          p.BrandHandle,
			PostURL:              p.PostURL,
			PostType:             string(p.PostType),
			PostCaption:          p.PostCaption,
			PostedAt:             p.PostedAt,
			LikesCount:           p.LikesCount,
			CommentsCount:        p.CommentsCount,
			ViewsCount:           p.ViewsCount,
			DetectionSignals:     p.DetectionSignals,
			DetectionConfidence:  string(p.DetectionConfidence),
			DiscoveredViaHashtag: p.DiscoveredViaHashtag,
		}

		inserted, err := s.repo.Insert(row)
		if err != nil {
			logger.Logger.Printf("Failed to save partnership %s/%s: %v", p.CreatorHandle, p.BrandHandle, err)
			continue
		}
		if inserted {
			saved++
		}
	}
	return saved
}
