package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabrink/creator-scout/posts"
)

func datedPost(daysAgo int) posts.Post {
	t := time.Now().AddDate(0, 0, -daysAgo)
	return posts.Post{PostedAt: &t}
}

func TestCalculateEmptyBatch(t *testing.T) {
	assert.Nil(t, Calculate(nil, 10000))
	assert.Nil(t, Calculate([]posts.Post{}, 10000))
}

func TestCalculateEngagementRate(t *testing.T) {
	batch := []posts.Post{
		{LikesCount: 100, CommentsCount: 10},
		{LikesCount: 200, CommentsCount: 20},
	}

	summary := Calculate(batch, 10000)
	require.NotNil(t, summary)

	// (330 / 2) / 10000 * 100 = 1.65
	assert.Equal(t, 1.65, summary.CalculatedEngagementRate)
	assert.Equal(t, 150, summary.AvgLikes)
	assert.Equal(t, 15, summary.AvgComments)
}

func TestCalculateZeroFollowers(t *testing.T) {
	summary := Calculate([]posts.Post{{LikesCount: 500}}, 0)
	require.NotNil(t, summary)
	assert.Equal(t, 0.0, summary.CalculatedEngagementRate)
	assert.Equal(t, 500, summary.AvgLikes)
}

func TestCalculateAvgViewsOnlyOverViewedPosts(t *testing.T) {
	batch := []posts.Post{
		{ViewsCount: 1000},
		{ViewsCount: 2000},
		{ViewsCount: 0},
		{ViewsCount: 0},
		{ViewsCount: 0},
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 1500, summary.AvgViews)
}

func TestCalculatePostingFrequency(t *testing.T) {
	// Three dated posts spread over two weeks: 3/14*7 = 1.5 per week.
	batch := []posts.Post{
		datedPost(0),
		datedPost(7),
		datedPost(14),
		{}, // undated, excluded from frequency
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 1.5, summary.PostingFrequencyPerWeek)
	require.NotNil(t, summary.DaysSinceLastPost)
	assert.Equal(t, 0, *summary.DaysSinceLastPost)
}

func TestCalculateFrequencyNeedsTwoDatedPosts(t *testing.T) {
	summary := Calculate([]posts.Post{datedPost(3), {}}, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 0.0, summary.PostingFrequencyPerWeek)

	summary = Calculate([]posts.Post{{}, {}}, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 0.0, summary.PostingFrequencyPerWeek)
	assert.Nil(t, summary.LastPostDate)
	assert.Nil(t, summary.DaysSinceLastPost)
}

func TestCalculateContentMix(t *testing.T) {
	batch := []posts.Post{
		{Type: posts.PostTypeImage},
		{Type: posts.PostTypeImage},
		{Type: posts.PostTypeVideo},
		{},
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 50, summary.ContentMix["image"])
	assert.Equal(t, 25, summary.ContentMix["video"])
	assert.Equal(t, 25, summary.ContentMix["unknown"])
}

func TestCalculateTopHashtags(t *testing.T) {
	batch := []posts.Post{
		{Hashtags: []string{"vegan", "fitness"}},
		{Hashtags: []string{"fitness", "gym"}},
		{Hashtags: []string{"fitness", "vegan"}},
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, []string{"fitness", "vegan", "gym"}, summary.TopHashtags)
}

func TestCalculateTopHashtagsTiesByFirstAppearance(t *testing.T) {
	batch := []posts.Post{
		{Hashtags: []string{"alpha", "beta"}},
		{Hashtags: []string{"beta", "alpha"}},
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, []string{"alpha", "beta"}, summary.TopHashtags)
}

func TestCalculateTopHashtagsCapsAtTen(t *testing.T) {
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	summary := Calculate([]posts.Post{{Hashtags: tags}}, 100)
	require.NotNil(t, summary)
	assert.Len(t, summary.TopHashtags, 10)
}

func TestCalculateSponsoredBrandUnion(t *testing.T) {
	batch := []posts.Post{
		{Sponsored: true, DetectedBrands: []string{"acme", "shoeco"}},
		{Sponsored: true, DetectedBrands: []string{"shoeco", "fitfuel"}},
		{Sponsored: false, DetectedBrands: []string{"ignored"}},
	}

	summary := Calculate(batch, 100)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.SponsoredPostsCount)
	assert.Equal(t, []string{"acme", "shoeco", "fitfuel"}, summary.DetectedBrands)
	assert.Equal(t, 3, summary.BrandPartnershipCount)
}
