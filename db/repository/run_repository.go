package repository

import (
	"github.com/okabrink/creator-scout/db/models"
	"gorm.io/gorm"
)

// RunRepository defines the interface for discovery run bookkeeping
type RunRepository interface {
	Create(run *models.DiscoveryRun) error
	Update(run *models.DiscoveryRun) error
	ListRecent(limit int) ([]models.DiscoveryRun, error)
}

// GormRunRepository implements RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) RunRepository {
	return &GormRunRepository{db: db}
}

func (r *GormRunRepository) Create(run *models.DiscoveryRun) error {
	return r.db.Create(run).Error
}

func (r *GormRunRepository) Update(run *models.DiscoveryRun) error {
	return r.db.Save(run).Error
}

func (r *GormRunRepository) ListRecent(limit int) ([]models.DiscoveryRun, error) {
	var runs []models.DiscoveryRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
