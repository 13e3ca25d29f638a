package repository

import (
	"github.com/okabrink/creator-scout/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for creator post operations
type PostRepository interface {
	Upsert(post *models.CreatorPost) error
	Count() (int64, error)
}

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Upsert inserts a post or replaces the mutable engagement fields on
// conflict, so re-enriching refreshes counts in place
func (r *GormPostRepository) Upsert(post *models.CreatorPost) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"caption", "hashtags", "tagged_accounts", "likes_count",
			"comments_count", "views_count", "shares_count", "saves_count",
			"is_sponsored", "sponsor_signals", "detected_brands", "updated_at",
		}),
	}).Create(post).Error
}

func (r *GormPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.CreatorPost{}).Count(&count).Error
	return count, err
}
