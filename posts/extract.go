package posts

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_.]+`)
)

// ExtractHashtags returns the lowercased, deduplicated hashtags found in
// text, without the leading '#'. Order follows first appearance.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[1:])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ExtractMentions returns the lowercased, deduplicated @handles found in
// text, without the leading '@'. Order follows first appearance.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllString(text, -1)
	handles := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		handle := strings.ToLower(m[1:])
		if !seen[handle] {
			seen[handle] = true
			handles = append(handles, handle)
		}
	}
	return handles
}

// NormalizeHandle lowercases a handle and strips a leading '@'.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(handle)), "@")
}

// FilterByKeywords keeps only posts whose caption or hashtags contain at
// least one of the given niche keywords. An empty keyword list keeps
// everything.
func FilterByKeywords(batch []Post, keywords []string) []Post {
	if len(keywords) == 0 {
		return batch
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	if len(lowered) == 0 {
		return batch
	}

	filtered := make([]Post, 0, len(batch))
	for _, p := range batch {
		text := strings.ToLower(p.Caption + " " + strings.Join(p.Hashtags, " "))
		for _, k := range lowered {
			if strings.Contains(text, k) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}
