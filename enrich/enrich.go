// Package enrich computes aggregate engagement statistics for a creator
// from a batch of their recent posts.
package enrich

import (
	"math"
	"sort"
	"time"

	"github.com/okabrink/creator-scout/posts"
)

// Summary is the per-creator enrichment result. It is recomputed wholesale
// on every run and fully replaces any previous summary.
type Summary struct {
	CalculatedEngagementRate float64        `json:"calculated_engagement_rate"`
	AvgLikes                 int            `json:"avg_likes"`
	AvgComments              int            `json:"avg_comments"`
	AvgViews                 int            `json:"avg_views"`
	PostingFrequencyPerWeek  float64        `json:"posting_frequency_per_week"`
	LastPostDate             *time.Time     `json:"last_post_date"`
	DaysSinceLastPost        *int           `json:"days_since_last_post"`
	ContentMix               map[string]int `json:"content_mix"`
	TopHashtags              []string       `json:"top_hashtags"`
	SponsoredPostsCount      int            `json:"sponsored_posts_count"`
	DetectedBrands           []string       `json:"detected_brands"`
	BrandPartnershipCount    int            `json:"brand_partnership_count"`
}

// Calculate aggregates a creator's post batch into a Summary. Returns nil
// for an empty batch: "nothing to enrich" is absence, not a zeroed record.
// All divisions are guarded, so a zero follower count or undated posts
// simply produce zero/absent fields.
func Calculate(batch []posts.Post, followerCount int) *Summary {
	if len(batch) == 0 {
		return nil
	}

	count := len(batch)
	totalLikes, totalComments := 0, 0
	for _, p := range batch {
		totalLikes += p.LikesCount
		totalComments += p.CommentsCount
	}

	var engagementRate float64
	if followerCount > 0 {
		raw := float64(totalLikes+totalComments) / float64(count) / float64(followerCount) * 100
		engagementRate = math.Round(raw*100) / 100
	}

	// Views average only over posts that have views at all; mixing in
	// zero-view image posts would silently depress it.
	viewedPosts, totalViews := 0, 0
	for _, p := range batch {
		if p.ViewsCount > 0 {
			viewedPosts++
			totalViews += p.ViewsCount
		}
	}
	avgViews := 0
	if viewedPosts > 0 {
		avgViews = int(math.Round(float64(totalViews) / float64(viewedPosts)))
	}

	dated := make([]posts.Post, 0, count)
	for _, p := range batch {
		if p.PostedAt != nil {
			dated = append(dated, p)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].PostedAt.After(*dated[j].PostedAt)
	})

	var frequency float64
	if len(dated) >= 2 {
		newest := *dated[0].PostedAt
		oldest := *dated[len(dated)-1].PostedAt
		daySpan := newest.Sub(oldest).Hours() / 24
		if daySpan > 0 {
			frequency = math.Round(float64(len(dated))/daySpan*7*10) / 10
		}
	}

	var lastPostDate *time.Time
	var daysSinceLastPost *int
	if len(dated) > 0 {
		last := *dated[0].PostedAt
		lastPostDate = &last
		days := int(math.Round(time.Since(last).Hours() / 24))
		daysSinceLastPost = &days
	}

	summary := &Summary{
		CalculatedEngagementRate: engagementRate,
		AvgLikes:                 int(math.Round(float64(totalLikes) / float64(count))),
		AvgComments:              int(math.Round(float64(totalComments) / float64(count))),
		AvgViews:                 avgViews,
		PostingFrequencyPerWeek:  frequency,
		LastPostDate:             lastPostDate,
		DaysSinceLastPost:        daysSinceLastPost,
		ContentMix:               contentMix(batch),
		TopHashtags:              topHashtags(batch, 10),
	}

	brands := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range batch {
		if !p.Sponsored {
			continue
		}
		summary.SponsoredPostsCount++
		for _, b := range p.DetectedBrands {
			if !seen[b] {
				seen[b] = true
				brands = append(brands, b)
			}
		}
	}
	summary.DetectedBrands = brands
	summary.BrandPartnershipCount = len(brands)

	return summary
}

// contentMix maps post type to its share of the batch in percent. Buckets
// are rounded independently, so the values may not sum to exactly 100.
func contentMix(batch []posts.Post) map[string]int {
	typeCounts := make(map[string]int)
	for _, p := range batch {
		t := string(p.Type)
		if t == "" {
			t = string(posts.PostTypeUnknown)
		}
		typeCounts[t]++
	}

	mix := make(map[string]int, len(typeCounts))
	for t, c := range typeCounts {
		mix[t] = int(math.Round(float64(c) / float64(len(batch)) * 100))
	}
	return mix
}

// topHashtags returns the most frequent hashtags across the batch, ties
// broken by first appearance.
func topHashtags(batch []posts.Post, limit int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range batch {
		for _, tag := range p.Hashtags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
