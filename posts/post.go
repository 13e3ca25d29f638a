package posts

import (
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

type PostType string

const (
	PostTypeImage    PostType = "image"
	PostTypeVideo    PostType = "video"
	PostTypeCarousel PostType = "carousel"
	PostTypeUnknown  PostType = "unknown"
)

// MaxCaptionLength bounds the stored caption size.
const MaxCaptionLength = 2000

// Post is the platform-agnostic shape every normalizer maps into. It is
// constructed once per scraped item and not mutated afterwards, except for
// the sponsorship fields which the pipeline fills in right after mapping.
type Post struct {
	Platform    Platform
	ID          string
	URL         string
	OwnerHandle string
	Caption     string
	Hashtags    []string
	// TaggedAccounts are platform-level tags, distinct from @mentions
	// parsed out of the caption.
	TaggedAccounts []string
	// PartnershipHandles are platform-native paid-partnership disclosures,
	// the single highest-trust sponsorship signal.
	PartnershipHandles []string
	Type               PostType
	LikesCount         int
	CommentsCount      int
	ViewsCount         int
	SharesCount        int
	SavesCount         int
	PostedAt           *time.Time

	// Filled in by sponsorship detection during mapping.
	Sponsored      bool
	SponsorSignals []string
	DetectedBrands []string
}

// HasIdentity reports whether the post can be persisted. Posts without a
// source ID or canonical URL are dropped.
func (p Post) HasIdentity() bool {
	return p.ID != ""
}
