package posts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawInstagramPost covers the item shapes both the hashtag scraper and the
// post scraper actors return. Field names drifted across actor versions, so
// most values carry an alias fallback.
type RawInstagramPost struct {
	ID               string          `json:"id"`
	ShortCode        string          `json:"shortCode"`
	URL              string          `json:"url"`
	Type             string          `json:"type"`
	Caption          string          `json:"caption"`
	OwnerUsername    string          `json:"ownerUsername"`
	Hashtags         []HashtagRef    `json:"hashtags"`
	TaggedUsers      []TaggedUser    `json:"taggedUsers"`
	SponsoredBy      []string        `json:"sponsoredBy"`
	PaidPartnership  []string        `json:"paidPartnership"`
	LikesCount       int             `json:"likesCount"`
	Likes            int             `json:"likes"`
	CommentsCount    int             `json:"commentsCount"`
	Comments         int             `json:"comments"`
	VideoViewCount   int             `json:"videoViewCount"`
	VideoPlayCount   int             `json:"videoPlayCount"`
	VideoURL         string          `json:"videoUrl"`
	ChildPosts       json.RawMessage `json:"childPosts"`
	Timestamp        FlexTime        `json:"timestamp"`
	TakenAtTimestamp FlexTime        `json:"takenAtTimestamp"`
}

// MapInstagramPost normalizes a raw scraper item into the common Post
// shape. Missing fields fall back to documented defaults; nothing here
// can fail.
func MapInstagramPost(raw RawInstagramPost) Post {
	caption := truncateCaption(raw.Caption)

	hashtags := ExtractHashtags(caption)
	hashtags = mergeHandles(hashtags, flexStrings(raw.Hashtags))

	tagged := make([]string, 0, len(raw.TaggedUsers))
	for _, u := range raw.TaggedUsers {
		if h := NormalizeHandle(u.String()); h != "" {
			tagged = append(tagged, h)
		}
	}

	partnership := make([]string, 0, len(raw.SponsoredBy)+len(raw.PaidPartnership))
	for _, h := range append(append([]string{}, raw.SponsoredBy...), raw.PaidPartnership...) {
		if n := NormalizeHandle(h); n != "" {
			partnership = append(partnership, n)
		}
	}

	postedAt := raw.Timestamp.Time()
	if postedAt == nil {
		postedAt = raw.TakenAtTimestamp.Time()
	}

	id := raw.ID
	if id == "" {
		id = raw.ShortCode
	}
	if id == "" {
		id = raw.URL
	}

	url := raw.URL
	if url == "" && raw.ShortCode != "" {
		url = fmt.Sprintf("https://instagram.com/p/%s", raw.ShortCode)
	}

	return Post{
		Platform:           PlatformInstagram,
		ID:                 id,
		URL:                url,
		OwnerHandle:        NormalizeHandle(raw.OwnerUsername),
		Caption:            caption,
		Hashtags:           hashtags,
		TaggedAccounts:     tagged,
		PartnershipHandles: partnership,
		Type:               instagramPostType(raw),
		LikesCount:         firstPositive(raw.LikesCount, raw.Likes),
		CommentsCount:      firstPositive(raw.CommentsCount, raw.Comments),
		ViewsCount:         firstPositive(raw.VideoViewCount, raw.VideoPlayCount),
		PostedAt:           postedAt,
	}
}

func instagramPostType(raw RawInstagramPost) PostType {
	switch strings.ToLower(raw.Type) {
	case "image", "photo":
		return PostTypeImage
	case "video", "reel":
		return PostTypeVideo
	case "carousel", "sidecar":
		return PostTypeCarousel
	}
	if raw.Type != "" {
		return PostTypeUnknown
	}
	if raw.VideoURL != "" {
		return PostTypeVideo
	}
	if len(raw.ChildPosts) > 0 && string(raw.ChildPosts) != "null" {
		return PostTypeCarousel
	}
	return PostTypeImage
}

func truncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) > MaxCaptionLength {
		return string(runes[:MaxCaptionLength])
	}
	return caption
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func flexStrings[T interface{ String() string }](refs []T) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if s := strings.ToLower(strings.TrimSpace(r.String())); s != "" {
			out = append(out, strings.TrimPrefix(s, "#"))
		}
	}
	return out
}

func mergeHandles(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}
