package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"lowercases and dedupes", "my #OOTD and another #ootd", []string{"ootd"}},
		{"keeps first-appearance order", "#fitness #vegan #fitness #gym", []string{"fitness", "vegan", "gym"}},
		{"unicode letters", "heute #werbung und #grüße", []string{"werbung", "grüße"}},
		{"underscores and digits", "#day_1 done", []string{"day_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"lowercases and dedupes", "ft @ShoeCo and @shoeco", []string{"shoeco"}},
		{"dots and underscores", "with @some.brand_1", []string{"some.brand_1"}},
		{"multiple in order", "@first then @second", []string{"first", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.text))
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "shoeco", NormalizeHandle("@ShoeCo"))
	assert.Equal(t, "shoeco", NormalizeHandle("  shoeco "))
	assert.Equal(t, "", NormalizeHandle(""))
}

func TestFilterByKeywords(t *testing.T) {
	batch := []Post{
		{ID: "1", Caption: "morning yoga flow"},
		{ID: "2", Caption: "new recipe", Hashtags: []string{"veganfood"}},
		{ID: "3", Caption: "crypto tips"},
	}

	filtered := FilterByKeywords(batch, []string{"yoga", "vegan"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "2", filtered[1].ID)

	// No keywords keeps everything.
	assert.Len(t, FilterByKeywords(batch, nil), 3)
	assert.Len(t, FilterByKeywords(batch, []string{"  "}), 3)
}
