package posts

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeInstagram(t *testing.T, blob string) Post {
	t.Helper()
	var raw RawInstagramPost
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))
	return MapInstagramPost(raw)
}

func TestMapInstagramPostFullItem(t *testing.T) {
	post := decodeInstagram(t, `{
		"id": "321",
		"shortCode": "Cxy12",
		"url": "https://instagram.com/p/Cxy12",
		"type": "Image",
		"caption": "Morning routine #fitness ft @shoeco",
		"ownerUsername": "FitCreator",
		"hashtags": [{"name": "Fitness"}, "wellness"],
		"taggedUsers": [{"username": "ShoeCo"}, "gymbuddy"],
		"paidPartnership": ["shoeco"],
		"likesCount": 1500,
		"commentsCount": 42,
		"timestamp": "2026-02-14T09:30:00Z"
	}`)

	assert.Equal(t, PlatformInstagram, post.Platform)
	assert.Equal(t, "321", post.ID)
	assert.Equal(t, "https://instagram.com/p/Cxy12", post.URL)
	assert.Equal(t, "fitcreator", post.OwnerHandle)
	assert.Equal(t, PostTypeImage, post.Type)
	assert.Equal(t, []string{"fitness", "wellness"}, post.Hashtags)
	assert.Equal(t, []string{"shoeco", "gymbuddy"}, post.TaggedAccounts)
	assert.Equal(t, []string{"shoeco"}, post.PartnershipHandles)
	assert.Equal(t, 1500, post.LikesCount)
	assert.Equal(t, 42, post.CommentsCount)
	require.NotNil(t, post.PostedAt)
	assert.Equal(t, time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC), post.PostedAt.UTC())
}

func TestMapInstagramPostAliasFields(t *testing.T) {
	post := decodeInstagram(t, `{
		"shortCode": "Abc99",
		"likes": 10,
		"comments": 3,
		"videoPlayCount": 900,
		"takenAtTimestamp": 1717027200
	}`)

	assert.Equal(t, "Abc99", post.ID)
	assert.Equal(t, "https://instagram.com/p/Abc99", post.URL)
	assert.Equal(t, 10, post.LikesCount)
	assert.Equal(t, 3, post.CommentsCount)
	assert.Equal(t, 900, post.ViewsCount)
	require.NotNil(t, post.PostedAt)
	assert.Equal(t, int64(1717027200), post.PostedAt.Unix())
}

func TestMapInstagramPostMillisTimestamp(t *testing.T) {
	post := decodeInstagram(t, `{"id": "1", "timestamp": 1717027200000}`)

	require.NotNil(t, post.PostedAt)
	assert.Equal(t, int64(1717027200), post.PostedAt.Unix())
}

func TestMapInstagramPostNumericStringTimestamp(t *testing.T) {
	post := decodeInstagram(t, `{"id": "1", "timestamp": "1717027200"}`)

	require.NotNil(t, post.PostedAt)
	assert.Equal(t, int64(1717027200), post.PostedAt.Unix())
}

func TestMapInstagramPostUnparseableTimestamp(t *testing.T) {
	post := decodeInstagram(t, `{"id": "1", "timestamp": "yesterday"}`)
	assert.Nil(t, post.PostedAt)
}

func TestMapInstagramPostTypeInference(t *testing.T) {
	assert.Equal(t, PostTypeVideo,
		decodeInstagram(t, `{"id": "1", "videoUrl": "https://cdn/x.mp4"}`).Type)
	assert.Equal(t, PostTypeCarousel,
		decodeInstagram(t, `{"id": "1", "childPosts": [{"id": "2"}]}`).Type)
	assert.Equal(t, PostTypeImage,
		decodeInstagram(t, `{"id": "1"}`).Type)
	assert.Equal(t, PostTypeCarousel,
		decodeInstagram(t, `{"id": "1", "type": "Sidecar"}`).Type)
	assert.Equal(t, PostTypeUnknown,
		decodeInstagram(t, `{"id": "1", "type": "Hologram"}`).Type)
}

func TestMapInstagramPostTruncatesCaption(t *testing.T) {
	long := strings.Repeat("é", MaxCaptionLength+50)
	var raw RawInstagramPost
	raw.ID = "1"
	raw.Caption = long

	post := MapInstagramPost(raw)
	assert.Equal(t, MaxCaptionLength, len([]rune(post.Caption)))
}

func TestMapInstagramPostEmptyItem(t *testing.T) {
	post := decodeInstagram(t, `{}`)

	assert.False(t, post.HasIdentity())
	assert.Nil(t, post.PostedAt)
	assert.Equal(t, 0, post.LikesCount)
}
