package service

import (
	"fmt"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/posts"
)

// BrandService handles brand-related operations
type BrandService struct {
	repo repository.BrandRepository
}

// NewBrandService creates a new brand service
func NewBrandService(repo repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

// IsKnown reports whether a brand with this handle has been saved before.
func (s *BrandService) IsKnown(handle string) bool {
	_, err := s.repo.FindByHandle(handle)
	return err == nil
}

// SaveBrand upserts a scraped brand profile
func (s *BrandService) SaveBrand(profile posts.CreatorProfile) error {
	if profile.Handle == "" {
		return fmt.Errorf("skipped brand with no handle")
	}

	name := profile.FullName
	if name == "" {
		name = profile.Handle
	}

	brand := &models.Brand{
		Handle:         profile.Handle,
		BrandName:      name,
		Bio:            profile.Bio,
		FollowerCount:  profile.FollowerCount,
		FollowingCount: profile.FollowingCount,
		IsVerified:     profile.IsVerified,
		CategoryName:   profile.CategoryName,
		Website:        profile.Website,
		ProfilePicURL:  profile.ProfilePicURL,
		ProfileURL:     profile.ProfileURL,
	}

	return s.repo.Upsert(brand)
}
