package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[apify]
token = "apify_api_xyz"

[options]
save_location = "/tmp/scout-data"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "apify_api_xyz", cfg.Apify.Token)
	assert.Equal(t, "/tmp/scout-data", cfg.Options.SaveLocation)
	assert.Equal(t, 100, cfg.Options.ResultsPerHashtag)
	assert.Equal(t, 15, cfg.Options.PostsPerCreator)
	assert.Equal(t, 1000000, cfg.Options.MaxFollowers)
	assert.Equal(t, 24, cfg.Refresh.IntervalHours)
	assert.Equal(t, 30, cfg.Refresh.StaleAfterDays)
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
[apify]
token = "apify_api_xyz"

[options]
save_location = "/tmp/scout-data"
results_per_hashtag = 40
posts_per_creator = 25
min_followers = 5000
max_followers = 200000

[discovery]
niche_keywords = ["yoga", "vegan"]

[refresh]
enabled = true
interval_hours = 6
stale_after_days = 14
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Options.ResultsPerHashtag)
	assert.Equal(t, 25, cfg.Options.PostsPerCreator)
	assert.Equal(t, 5000, cfg.Options.MinFollowers)
	assert.Equal(t, 200000, cfg.Options.MaxFollowers)
	assert.Equal(t, []string{"yoga", "vegan"}, cfg.Discovery.NicheKeywords)
	assert.True(t, cfg.Refresh.Enabled)
	assert.Equal(t, 6, cfg.Refresh.IntervalHours)
	assert.Equal(t, 14, cfg.Refresh.StaleAfterDays)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	path := writeConfig(t, `
[options]
save_location = "/tmp/scout-data"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadConfigRequiresSaveLocation(t *testing.T) {
	path := writeConfig(t, `
[apify]
token = "apify_api_xyz"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save_location")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnsureConfigExistsCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, EnsureConfigExists(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	// The generated default leaves the token blank, so it fails validation.
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{}
	cfg.Options.SaveLocation = "/data/scout"
	assert.Equal(t, filepath.Join("/data/scout", "creator-scout.db"), DatabasePath(cfg))
}
