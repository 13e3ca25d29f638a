package models

import (
	"time"
)

// Creator is a discovered social profile, one row per platform+handle.
type Creator struct {
	ID                    uint       `gorm:"primaryKey"`
	Platform              string     `gorm:"uniqueIndex:idx_creators_platform_handle;not null"`
	Handle                string     `gorm:"uniqueIndex:idx_creators_platform_handle;not null"`
	FullName              string
	Bio                   string
	FollowerCount         int
	FollowingCount        int
	PostsCount            int
	EngagementRate        *float64
	IsVerified            bool
	IsBusinessAccount     bool
	CategoryName          string
	ProfileURL            string
	ProfilePicURL         string
	Website               string
	DiscoveredViaHashtags StringList `gorm:"type:text"`

	// Enrichment fields, replaced wholesale on every enrichment run.
	EnrichmentData    string `gorm:"type:text"`
	EnrichedAt        *time.Time
	PostsScrapedCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name
func (Creator) TableName() string {
	return "creators"
}
