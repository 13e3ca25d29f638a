package repository

import (
	"time"

	"github.com/okabrink/creator-scout/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatorRepository defines the interface for creator operations
type CreatorRepository interface {
	Upsert(creator *models.Creator) error
	FindByHandle(platform, handle string) (*models.Creator, error)
	UpdateEnrichment(id uint, data string, rate *float64, postsScraped int, enrichedAt time.Time) error
	FindStale(platform string, olderThan time.Time, limit int) ([]models.Creator, error)
	List(limit int) ([]models.Creator, error)
	Count() (int64, error)
	CountSince(t time.Time) (int64, error)
	AverageEngagementRate() (float64, error)
	TopCategory() (string, error)
}

// GormCreatorRepository implements CreatorRepository using GORM
type GormCreatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository creates a new creator repository
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &GormCreatorRepository{db: db}
}

// Upsert inserts a creator or refreshes the profile fields of an existing
// row with the same platform+handle
func (r *GormCreatorRepository) Upsert(creator *models.Creator) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}, {Name: "handle"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "bio", "follower_count", "following_count", "posts_count",
			"engagement_rate", "is_verified", "is_business_account", "category_name",
			"profile_url", "profile_pic_url", "website", "updated_at",
		}),
	}).Create(creator).Error
}

func (r *GormCreatorRepository) FindByHandle(platform, handle string) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.Where("platform = ? AND handle = ?", platform, handle).First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// UpdateEnrichment replaces the enrichment fields wholesale
func (r *GormCreatorRepository) UpdateEnrichment(id uint, data string, rate *float64, postsScraped int, enrichedAt time.Time) error {
	return r.db.Model(&models.Creator{}).Where("id = ?", id).Updates(map[string]interface{}{
		"enrichment_data":     data,
		"engagement_rate":     rate,
		"posts_scraped_count": postsScraped,
		"enriched_at":         enrichedAt,
	}).Error
}

func (r *GormCreatorRepository) FindStale(platform string, olderThan time.Time, limit int) ([]models.Creator, error) {
	var creators []models.Creator
	err := r.db.Where("platform = ? AND (enriched_at IS NULL OR enriched_at < ?)", platform, olderThan).
		Order("enriched_at ASC").Limit(limit).Find(&creators).Error
	return creators, err
}

func (r *GormCreatorRepository) List(limit int) ([]models.Creator, error) {
	var creators []models.Creator
	err := r.db.Order("follower_count DESC").Limit(limit).Find(&creators).Error
	return creators, err
}

func (r *GormCreatorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Creator{}).Count(&count).Error
	return count, err
}

func (r *GormCreatorRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Creator{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

func (r *GormCreatorRepository) AverageEngagementRate() (float64, error) {
	var avg float64
	err := r.db.Model(&models.Creator{}).
		Where("engagement_rate IS NOT NULL").
		Select("COALESCE(AVG(engagement_rate), 0)").Scan(&avg).Error
	return avg, err
}

func (r *GormCreatorRepository) TopCategory() (string, error) {
	var category string
	err := r.db.Model(&models.Creator{}).
		Where("category_name != ''").
		Select("category_name").
		Group("category_name").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&category).Error
	return category, err
}
