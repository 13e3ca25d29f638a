package repository

import (
	"github.com/okabrink/creator-scout/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PartnershipRepository defines the interface for partnership operations
type PartnershipRepository interface {
	// Insert adds a partnership unless the (creator, brand, post) triple
	// already exists. Reports whether a row was actually written.
	Insert(partnership *models.Partnership) (bool, error)
	Count() (int64, error)
	CountForBrand(brandHandle string) (int64, error)
	ListRecent(limit int) ([]models.Partnership, error)
}

// GormPartnershipRepository implements PartnershipRepository using GORM
type GormPartnershipRepository struct {
	db *gorm.DB
}

// NewPartnershipRepository creates a new partnership repository
func NewPartnershipRepository(db *gorm.DB) PartnershipRepository {
	return &GormPartnershipRepository{db: db}
}

func (r *GormPartnershipRepository) Insert(partnership *models.Partnership) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "creator_handle"}, {Name: "brand_handle"}, {Name: "post_url"}},
		DoNothing: true,
	}).Create(partnership)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormPartnershipRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Partnership{}).Count(&count).Error
	return count, err
}

func (r *GormPartnershipRepository) CountForBrand(brandHandle string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Partnership{}).Where("brand_handle = ?", brandHandle).Count(&count).Error
	return count, err
}

func (r *GormPartnershipRepository) ListRecent(limit int) ([]models.Partnership, error) {
	var partnerships []models.Partnership
	err := r.db.Order("created_at DESC").Limit(limit).Find(&partnerships).Error
	return partnerships, err
}
