package detect

import (
	"time"

	"github.com/okabrink/creator-scout/posts"
)

// Partnership is one creator–brand association derived from a single
// detected sponsored post. Created once, never mutated.
type Partnership struct {
	CreatorHandle        string
	BrandHandle          string
	PostURL              string
	PostType             posts.PostType
	PostCaption          string
	PostedAt             *time.Time
	LikesCount           int
	CommentsCount        int
	ViewsCount           *int
	DetectionSignals     []string
	DetectionConfidence  Confidence
	DiscoveredViaHashtag string
}

// PartnershipRecords projects a detection result into one record per brand
// handle. All records from one post share identical post-level fields and
// differ only in BrandHandle. Deduplication across posts is left to the
// persistence layer's conflict handling.
func PartnershipRecords(post posts.Post, result Result, viaHashtag string) []Partnership {
	records := make([]Partnership, 0, len(result.BrandHandles))

	var views *int
	if post.ViewsCount > 0 {
		v := post.ViewsCount
		views = &v
	}

	postType := post.Type
	if postType == "" {
		postType = posts.PostTypeUnknown
	}

	for _, brand := range result.BrandHandles {
		records = append(records, Partnership{
			CreatorHandle:        posts.NormalizeHandle(post.OwnerHandle),
			BrandHandle:          brand,
			PostURL:              post.URL,
			PostType:             postType,
			PostCaption:          post.Caption,
			PostedAt:             post.PostedAt,
			LikesCount:           post.LikesCount,
			CommentsCount:        post.CommentsCount,
			ViewsCount:           views,
			DetectionSignals:     result.Signals,
			DetectionConfidence:  result.Confidence,
			DiscoveredViaHashtag: viaHashtag,
		})
	}

	return records
}
