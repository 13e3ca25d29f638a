package posts

// RawTikTokPost covers the item shape of the TikTok profile scraper actor.
type RawTikTokPost struct {
	ID            string       `json:"id"`
	VideoID       string       `json:"videoId"`
	WebVideoURL   string       `json:"webVideoUrl"`
	URL           string       `json:"url"`
	Text          string       `json:"text"`
	Desc          string       `json:"desc"`
	Hashtags      []HashtagRef `json:"hashtags"`
	DiggCount     int          `json:"diggCount"`
	Likes         int          `json:"likes"`
	CommentCount  int          `json:"commentCount"`
	Comments      int          `json:"comments"`
	PlayCount     int          `json:"playCount"`
	Plays         int          `json:"plays"`
	Views         int          `json:"views"`
	ShareCount    int          `json:"shareCount"`
	Shares        int          `json:"shares"`
	CollectCount  int          `json:"collectCount"`
	CreateTimeISO FlexTime     `json:"createTimeISO"`
	CreateTime    FlexTime     `json:"createTime"`
	AuthorMeta    struct {
		Name string `json:"name"`
	} `json:"authorMeta"`
}

// MapTikTokPost normalizes a raw TikTok item into the common Post shape.
// Every TikTok post is a video.
func MapTikTokPost(raw RawTikTokPost) Post {
	caption := raw.Text
	if caption == "" {
		caption = raw.Desc
	}
	caption = truncateCaption(caption)

	hashtags := ExtractHashtags(caption)
	hashtags = mergeHandles(hashtags, flexStrings(raw.Hashtags))

	postedAt := raw.CreateTimeISO.Time()
	if postedAt == nil {
		postedAt = raw.CreateTime.Time()
	}

	id := raw.ID
	if id == "" {
		id = raw.VideoID
	}
	if id == "" {
		id = raw.WebVideoURL
	}

	url := raw.WebVideoURL
	if url == "" {
		url = raw.URL
	}

	return Post{
		Platform:      PlatformTikTok,
		ID:            id,
		URL:           url,
		OwnerHandle:   NormalizeHandle(raw.AuthorMeta.Name),
		Caption:       caption,
		Hashtags:      hashtags,
		Type:          PostTypeVideo,
		LikesCount:    firstPositive(raw.DiggCount, raw.Likes),
		CommentsCount: firstPositive(raw.CommentCount, raw.Comments),
		ViewsCount:    firstPositive(raw.PlayCount, raw.Plays, raw.Views),
		SharesCount:   firstPositive(raw.ShareCount, raw.Shares),
		SavesCount:    raw.CollectCount,
		PostedAt:      postedAt,
	}
}
