package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okabrink/creator-scout/posts"
)

func TestSourceHashtagMatchesCarriedTag(t *testing.T) {
	post := posts.Post{Hashtags: []string{"ootd", "veganfood"}}

	via := sourceHashtag(post, []string{"fitness", "veganfood"})

	assert.Equal(t, "veganfood", via)
}

func TestSourceHashtagIsCaseInsensitive(t *testing.T) {
	post := posts.Post{Hashtags: []string{"VeganFood"}}

	via := sourceHashtag(post, []string{"fitness", "veganfood"})

	assert.Equal(t, "veganfood", via)
}

func TestSourceHashtagPrefersFirstRequested(t *testing.T) {
	post := posts.Post{Hashtags: []string{"veganfood", "fitness"}}

	via := sourceHashtag(post, []string{"fitness", "veganfood"})

	assert.Equal(t, "fitness", via)
}

func TestSourceHashtagFallsBackToFirst(t *testing.T) {
	post := posts.Post{Hashtags: []string{"unrelated"}}

	via := sourceHashtag(post, []string{"fitness", "veganfood"})

	assert.Equal(t, "fitness", via)
}
