package posts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProfileFullItem(t *testing.T) {
	var raw RawProfile
	require.NoError(t, json.Unmarshal([]byte(`{
		"username": "FitCreator",
		"fullName": "Fit Creator",
		"biography": "Daily workouts",
		"followersCount": 52000,
		"followsCount": 310,
		"postsCount": 480,
		"verified": true,
		"isBusinessAccount": true,
		"businessCategoryName": "Fitness Trainer",
		"externalUrl": "https://fitcreator.example",
		"latestPosts": [
			{"likesCount": 1000, "commentsCount": 40},
			{"likesCount": 600, "commentsCount": 20}
		]
	}`), &raw))

	profile := MapProfile(raw)

	assert.Equal(t, "fitcreator", profile.Handle)
	assert.Equal(t, "Fit Creator", profile.FullName)
	assert.Equal(t, 52000, profile.FollowerCount)
	assert.Equal(t, 310, profile.FollowingCount)
	assert.Equal(t, 480, profile.PostsCount)
	assert.True(t, profile.IsVerified)
	assert.True(t, profile.IsBusinessAccount)
	assert.Equal(t, "Fitness Trainer", profile.CategoryName)
	assert.Equal(t, "https://fitcreator.example", profile.Website)
	assert.Equal(t, "https://instagram.com/fitcreator", profile.ProfileURL)

	// (1660 / 2) / 52000 * 100
	require.NotNil(t, profile.EngagementRate)
	assert.InDelta(t, 1.596, *profile.EngagementRate, 0.001)
}

func TestMapProfileAliasFields(t *testing.T) {
	var raw RawProfile
	require.NoError(t, json.Unmarshal([]byte(`{
		"profileName": "someone",
		"followedByCount": 900,
		"followingCount": 12,
		"bio": "hello",
		"url": "https://linkin.bio/someone"
	}`), &raw))

	profile := MapProfile(raw)

	assert.Equal(t, "someone", profile.Handle)
	assert.Equal(t, 900, profile.FollowerCount)
	assert.Equal(t, 12, profile.FollowingCount)
	assert.Equal(t, "hello", profile.Bio)
	assert.Equal(t, "https://linkin.bio/someone", profile.Website)
}

func TestMapProfileNoPostsNoRate(t *testing.T) {
	profile := MapProfile(RawProfile{Username: "quiet", FollowersCount: 100})
	assert.Nil(t, profile.EngagementRate)

	// Zero followers never divides.
	profile = MapProfile(RawProfile{Username: "new"})
	assert.Nil(t, profile.EngagementRate)
	assert.Equal(t, 0, profile.FollowerCount)
}
