package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabrink/creator-scout/posts"
)

func TestPartnershipRecordsOnePerBrand(t *testing.T) {
	postedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	post := posts.Post{
		Platform:      posts.PlatformInstagram,
		ID:            "abc123",
		URL:           "https://instagram.com/p/abc123",
		OwnerHandle:   "creator",
		Caption:       "#ad with friends",
		Type:          posts.PostTypeImage,
		LikesCount:    120,
		CommentsCount: 8,
		PostedAt:      &postedAt,
	}
	result := Result{
		BrandHandles: []string{"acme", "shoeco", "fitfuel"},
		Signals:      []string{"#ad", SignalMentionedInCaption},
		Confidence:   ConfidenceHigh,
		Sponsored:    true,
	}

	records := PartnershipRecords(post, result, "fitness")

	require.Len(t, records, 3)
	for i, brand := range result.BrandHandles {
		assert.Equal(t, brand, records[i].BrandHandle)
		assert.Equal(t, "creator", records[i].CreatorHandle)
		assert.Equal(t, post.URL, records[i].PostURL)
		assert.Equal(t, posts.PostTypeImage, records[i].PostType)
		assert.Equal(t, 120, records[i].LikesCount)
		assert.Equal(t, 8, records[i].CommentsCount)
		assert.Equal(t, &postedAt, records[i].PostedAt)
		assert.Equal(t, result.Signals, records[i].DetectionSignals)
		assert.Equal(t, ConfidenceHigh, records[i].DetectionConfidence)
		assert.Equal(t, "fitness", records[i].DiscoveredViaHashtag)
	}
}

func TestPartnershipRecordsZeroViewsIsNil(t *testing.T) {
	records := PartnershipRecords(
		posts.Post{OwnerHandle: "creator", ViewsCount: 0},
		Result{BrandHandles: []string{"acme"}},
		"beauty",
	)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].ViewsCount)
	assert.Equal(t, posts.PostTypeUnknown, records[0].PostType)
}

func TestPartnershipRecordsPositiveViews(t *testing.T) {
	records := PartnershipRecords(
		posts.Post{OwnerHandle: "creator", ViewsCount: 5400, Type: posts.PostTypeVideo},
		Result{BrandHandles: []string{"acme"}},
		"beauty",
	)

	require.Len(t, records, 1)
	require.NotNil(t, records[0].ViewsCount)
	assert.Equal(t, 5400, *records[0].ViewsCount)
}

func TestPartnershipRecordsNoBrands(t *testing.T) {
	records := PartnershipRecords(posts.Post{OwnerHandle: "creator"}, Result{}, "travel")
	assert.Empty(t, records)
}
