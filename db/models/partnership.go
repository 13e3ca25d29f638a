package models

import (
	"time"
)

// Partnership is one creator–brand association derived from a single
// sponsored post. The composite unique index gives the insert-or-ignore
// semantics: re-running discovery over the same posts is a no-op.
type Partnership struct {
	ID                   uint       `gorm:"primaryKey"`
	CreatorHandle        string     `gorm:"uniqueIndex:idx_partnerships_key;index;not null"`
	BrandHandle          string     `gorm:"uniqueIndex:idx_partnerships_key;index;not null"`
	PostURL              string     `gorm:"uniqueIndex:idx_partnerships_key;not null"`
	PostType             string
	PostCaption          string
	PostedAt             *time.Time
	LikesCount           int
	CommentsCount        int
	ViewsCount           *int
	DetectionSignals     StringList `gorm:"type:text"`
	DetectionConfidence  string
	DiscoveredViaHashtag string
	CreatedAt            time.Time
}

// TableName overrides the table name
func (Partnership) TableName() string {
	return "partnerships"
}
