package posts

import (
	"fmt"
)

// RawProfile covers the profile scraper actor output. The actor renamed
// several fields over time, hence the alias fallbacks.
type RawProfile struct {
	Username             string `json:"username"`
	ProfileName          string `json:"profileName"`
	FullName             string `json:"fullName"`
	Biography            string `json:"biography"`
	Bio                  string `json:"bio"`
	FollowersCount       int    `json:"followersCount"`
	FollowedByCount      int    `json:"followedByCount"`
	SubscribersCount     int    `json:"subscribersCount"`
	FollowsCount         int    `json:"followsCount"`
	FollowingCount       int    `json:"followingCount"`
	PostsCount           int    `json:"postsCount"`
	Verified             bool   `json:"verified"`
	IsBusinessAccount    bool   `json:"isBusinessAccount"`
	BusinessCategoryName string `json:"businessCategoryName"`
	ExternalURL          string `json:"externalUrl"`
	URL                  string `json:"url"`
	ProfilePicURL        string `json:"profilePicUrl"`
	LatestPosts          []struct {
		LikesCount    int `json:"likesCount"`
		CommentsCount int `json:"commentsCount"`
	} `json:"latestPosts"`
}

// CreatorProfile is the normalized creator shape handed to persistence.
type CreatorProfile struct {
	Handle            string
	FullName          string
	Bio               string
	FollowerCount     int
	FollowingCount    int
	PostsCount        int
	EngagementRate    *float64
	IsVerified        bool
	ProfileURL        string
	ProfilePicURL     string
	Website           string
	IsBusinessAccount bool
	CategoryName      string
}

// MapProfile normalizes a raw profile into a CreatorProfile. The quick
// engagement estimate over the embedded latest posts is a preview only;
// the enrichment pipeline recomputes it from full post data.
func MapProfile(raw RawProfile) CreatorProfile {
	handle := raw.Username
	if handle == "" {
		handle = raw.ProfileName
	}
	handle = NormalizeHandle(handle)

	followers := firstPositive(raw.FollowersCount, raw.FollowedByCount, raw.SubscribersCount)
	following := firstPositive(raw.FollowsCount, raw.FollowingCount)

	bio := raw.Biography
	if bio == "" {
		bio = raw.Bio
	}
	website := raw.ExternalURL
	if website == "" {
		website = raw.URL
	}

	var engagementRate *float64
	if len(raw.LatestPosts) > 0 && followers > 0 {
		total := 0
		for _, p := range raw.LatestPosts {
			total += p.LikesCount + p.CommentsCount
		}
		avg := float64(total) / float64(len(raw.LatestPosts))
		rate := avg / float64(followers) * 100
		engagementRate = &rate
	}

	return CreatorProfile{
		Handle:            handle,
		FullName:          raw.FullName,
		Bio:               bio,
		FollowerCount:     followers,
		FollowingCount:    following,
		PostsCount:        raw.PostsCount,
		EngagementRate:    engagementRate,
		IsVerified:        raw.Verified,
		ProfileURL:        fmt.Sprintf("https://instagram.com/%s", handle),
		ProfilePicURL:     raw.ProfilePicURL,
		Website:           website,
		IsBusinessAccount: raw.IsBusinessAccount,
		CategoryName:      raw.BusinessCategoryName,
	}
}
