package models

import (
	"time"
)

// CreatorPost is a normalized scraped post kept for enrichment history.
type CreatorPost struct {
	ID             uint       `gorm:"primaryKey"`
	Platform       string     `gorm:"uniqueIndex:idx_creator_posts_key;not null"`
	PostID         string     `gorm:"uniqueIndex:idx_creator_posts_key;not null"`
	OwnerHandle    string     `gorm:"index;not null"`
	PostURL        string
	PostType       string
	Caption        string
	Hashtags       StringList `gorm:"type:text"`
	TaggedAccounts StringList `gorm:"type:text"`
	LikesCount     int
	CommentsCount  int
	ViewsCount     int
	SharesCount    int
	SavesCount     int
	PostedAt       *time.Time
	IsSponsored    bool
	SponsorSignals StringList `gorm:"type:text"`
	DetectedBrands StringList `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name
func (CreatorPost) TableName() string {
	return "creator_posts"
}
