package models

import (
	"time"
)

// Brand is a profile that showed up as the brand side of a detected
// sponsorship.
type Brand struct {
	ID             uint   `gorm:"primaryKey"`
	Handle         string `gorm:"uniqueIndex;not null"`
	BrandName      string
	Bio            string
	FollowerCount  int
	FollowingCount int
	IsVerified     bool
	CategoryName   string
	Website        string
	ProfilePicURL  string
	ProfileURL     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name
func (Brand) TableName() string {
	return "brands"
}
