package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okabrink/creator-scout/posts"
)

func profileWithFollowers(handle string, followers int) posts.CreatorProfile {
	return posts.CreatorProfile{Handle: handle, FollowerCount: followers}
}

func TestDedupeProfilesLaterDuplicateWins(t *testing.T) {
	unique := dedupeProfiles([]posts.CreatorProfile{
		profileWithFollowers("alice", 100),
		profileWithFollowers("bob", 200),
		profileWithFollowers("alice", 150),
	})

	assert.Len(t, unique, 2)
	assert.Equal(t, "alice", unique[0].Handle)
	assert.Equal(t, 150, unique[0].FollowerCount)
	assert.Equal(t, "bob", unique[1].Handle)
}

func TestDedupeProfilesPreservesFirstSeenOrder(t *testing.T) {
	unique := dedupeProfiles([]posts.CreatorProfile{
		profileWithFollowers("carol", 1),
		profileWithFollowers("alice", 2),
		profileWithFollowers("carol", 3),
		profileWithFollowers("bob", 4),
	})

	handles := make([]string, len(unique))
	for i, p := range unique {
		handles[i] = p.Handle
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, handles)
}

func TestDedupeProfilesEmpty(t *testing.T) {
	assert.Empty(t, dedupeProfiles(nil))
}

func TestFilterFollowerRangeInclusiveBounds(t *testing.T) {
	filtered := filterFollowerRange([]posts.CreatorProfile{
		profileWithFollowers("low", 999),
		profileWithFollowers("min", 1000),
		profileWithFollowers("mid", 5000),
		profileWithFollowers("max", 10000),
		profileWithFollowers("high", 10001),
	}, 1000, 10000)

	handles := make([]string, len(filtered))
	for i, p := range filtered {
		handles[i] = p.Handle
	}
	assert.Equal(t, []string{"min", "mid", "max"}, handles)
}
