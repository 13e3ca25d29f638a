package repository

import (
	"github.com/okabrink/creator-scout/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BrandRepository defines the interface for brand operations
type BrandRepository interface {
	Upsert(brand *models.Brand) error
	FindByHandle(handle string) (*models.Brand, error)
	List(limit int) ([]models.Brand, error)
	Count() (int64, error)
}

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) Upsert(brand *models.Brand) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"brand_name", "bio", "follower_count", "following_count",
			"is_verified", "category_name", "website", "profile_pic_url",
			"profile_url", "updated_at",
		}),
	}).Create(brand).Error
}

func (r *GormBrandRepository) FindByHandle(handle string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.Where("handle = ?", handle).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) List(limit int) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.Order("follower_count DESC").Limit(limit).Find(&brands).Error
	return brands, err
}

func (r *GormBrandRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Brand{}).Count(&count).Error
	return count, err
}
