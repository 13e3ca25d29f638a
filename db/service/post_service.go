package service

import (
	"fmt"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/posts"
)

// PostService handles creator post persistence
type PostService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// SavePost upserts a normalized post. Posts without an identity are
// rejected before they reach the database.
func (s *PostService) SavePost(post posts.Post) error {
	if !post.HasIdentity() {
		return fmt.Errorf("skipped post with no id for %s", post.OwnerHandle)
	}

	row := &models.CreatorPost{
		Platform:       string(post.Platform),
		PostID:         post.ID,
		OwnerHandle:    post.OwnerHandle,
		PostURL:        post.URL,
		PostType:       string(post.Type),
		Caption:        post.Caption,
		Hashtags:       post.Hashtags,
		TaggedAccounts: post.TaggedAccounts,
		LikesCount:     post.LikesCount,
		CommentsCount:  post.CommentsCount,
		ViewsCount:     post.ViewsCount,
		SharesCount:    post.SharesCount,
		SavesCount:     post.SavesCount,
		PostedAt:       post.PostedAt,
		IsSponsored:    post.Sponsored,
		SponsorSignals: post.SponsorSignals,
		DetectedBrands: post.DetectedBrands,
	}

	return s.repo.Upsert(row)
}
