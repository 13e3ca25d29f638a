package models

import (
	"time"
)

// DiscoveryRun records one end-to-end discovery pipeline execution.
type DiscoveryRun struct {
	ID                uint       `gorm:"primaryKey"`
	RunUID            string     `gorm:"uniqueIndex;not null"`
	Hashtags          StringList `gorm:"type:text"`
	ResultsPerHashtag int
	MinFollowers      int
	MaxFollowers      int
	PostsFound        int
	UniqueHandles     int
	ProfilesScraped   int
	CreatorsSaved     int
	CreatorsFailed    int
	BrandsSaved       int
	PartnershipsSaved int
	StartedAt         time.Time
	CompletedAt       *time.Time
}

// TableName overrides the table name
func (DiscoveryRun) TableName() string {
	return "discovery_runs"
}
