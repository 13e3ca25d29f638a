package service

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/detect"
	"github.com/okabrink/creator-scout/enrich"
	"github.com/okabrink/creator-scout/logger"
	"github.com/okabrink/creator-scout/posts"
)

func TestMain(m *testing.M) {
	logger.Logger = log.New(io.Discard, "", 0)
	os.Exit(m.Run())
}

type fakePartnershipRepo struct {
	rows     []*models.Partnership
	failOn   string
	inserted map[string]bool
}

func (f *fakePartnershipRepo) Insert(p *models.Partnership) (bool, error) {
	if f.inserted == nil {
		f.inserted = make(map[string]bool)
	}
	if p.BrandHandle == f.failOn {
		return false, errors.New("insert failed")
	}
	key := p.CreatorHandle + "|" + p.BrandHandle + "|" + p.PostURL
	if f.inserted[key] {
		return false, nil
	}
	f.inserted[key] = true
	f.rows = append(f.rows, p)
	return true, nil
}

func (f *fakePartnershipRepo) Count() (int64, error)               { return int64(len(f.rows)), nil }
func (f *fakePartnershipRepo) CountForBrand(string) (int64, error) { return 0, nil }
func (f *fakePartnershipRepo) ListRecent(int) ([]models.Partnership, error) {
	return nil, nil
}

func TestPartnershipServiceSaveAll(t *testing.T) {
	repo := &fakePartnershipRepo{}
	svc := NewPartnershipService(repo)

	batch := []detect.Partnership{
		{CreatorHandle: "creator", BrandHandle: "acme", PostURL: "u1"},
		{CreatorHandle: "creator", BrandHandle: "shoeco", PostURL: "u1"},
		{CreatorHandle: "creator", BrandHandle: "acme", PostURL: "u1"}, // duplicate
	}

	saved := svc.SaveAll(batch)
	assert.Equal(t, 2, saved)
	assert.Len(t, repo.rows, 2)
}

func TestPartnershipServiceSaveAllContinuesPastFailures(t *testing.T) {
	repo := &fakePartnershipRepo{failOn: "badbrand"}
	svc := NewPartnershipService(repo)

	batch := []detect.Partnership{
		{CreatorHandle: "creator", BrandHandle: "badbrand", PostURL: "u1"},
		{CreatorHandle: "creator", BrandHandle: "goodbrand", PostURL: "u1"},
	}

	saved := svc.SaveAll(batch)
	assert.Equal(t, 1, saved)
}

type fakeCreatorRepo struct {
	upserted    []*models.Creator
	enrichments map[uint]string
	rates       map[uint]*float64
}

func (f *fakeCreatorRepo) Upsert(c *models.Creator) error {
	f.upserted = append(f.upserted, c)
	return nil
}

func (f *fakeCreatorRepo) FindByHandle(platform, handle string) (*models.Creator, error) {
	for _, c := range f.upserted {
		if c.Platform == platform && c.Handle == handle {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCreatorRepo) UpdateEnrichment(id uint, data string, rate *float64, postsScraped int, enrichedAt time.Time) error {
	if f.enrichments == nil {
		f.enrichments = make(map[uint]string)
		f.rates = make(map[uint]*float64)
	}
	f.enrichments[id] = data
	f.rates[id] = rate
	return nil
}

func (f *fakeCreatorRepo) FindStale(string, time.Time, int) ([]models.Creator, error) {
	return nil, nil
}
func (f *fakeCreatorRepo) List(int) ([]models.Creator, error)      { return nil, nil }
func (f *fakeCreatorRepo) Count() (int64, error)                   { return 0, nil }
func (f *fakeCreatorRepo) CountSince(time.Time) (int64, error)     { return 0, nil }
func (f *fakeCreatorRepo) AverageEngagementRate() (float64, error) { return 0, nil }
func (f *fakeCreatorRepo) TopCategory() (string, error)            { return "", nil }

type fakeBrandRepo struct {
	upserted []*models.Brand
}

func (f *fakeBrandRepo) Upsert(b *models.Brand) error {
	f.upserted = append(f.upserted, b)
	return nil
}

func (f *fakeBrandRepo) FindByHandle(handle string) (*models.Brand, error) {
	for _, b := range f.upserted {
		if b.Handle == handle {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBrandRepo) List(int) ([]models.Brand, error) { return nil, nil }
func (f *fakeBrandRepo) Count() (int64, error)            { return int64(len(f.upserted)), nil }

func TestBrandServiceSaveBrand(t *testing.T) {
	repo := &fakeBrandRepo{}
	svc := NewBrandService(repo)

	err := svc.SaveBrand(posts.CreatorProfile{
		Handle:        "shoeco",
		FollowerCount: 50000,
	})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	// Brand name falls back to the handle when the profile carries none.
	assert.Equal(t, "shoeco", repo.upserted[0].BrandName)
}

func TestBrandServiceSaveBrandRejectsEmptyHandle(t *testing.T) {
	svc := NewBrandService(&fakeBrandRepo{})
	assert.Error(t, svc.SaveBrand(posts.CreatorProfile{}))
}

func TestBrandServiceIsKnown(t *testing.T) {
	repo := &fakeBrandRepo{}
	svc := NewBrandService(repo)

	assert.False(t, svc.IsKnown("shoeco"))

	require.NoError(t, svc.SaveBrand(posts.CreatorProfile{Handle: "shoeco"}))
	assert.True(t, svc.IsKnown("shoeco"))
	assert.False(t, svc.IsKnown("teanow"))
}

func TestCreatorServiceSaveProfile(t *testing.T) {
	repo := &fakeCreatorRepo{}
	svc := NewCreatorService(repo)

	err := svc.SaveProfile(posts.CreatorProfile{
		Handle:        "fitcreator",
		FollowerCount: 5000,
	}, posts.PlatformInstagram, []string{"fitness"})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "instagram", repo.upserted[0].Platform)
	assert.Equal(t, models.StringList{"fitness"}, repo.upserted[0].DiscoveredViaHashtags)
}

func TestCreatorServiceSaveProfileRejectsEmptyHandle(t *testing.T) {
	svc := NewCreatorService(&fakeCreatorRepo{})
	assert.Error(t, svc.SaveProfile(posts.CreatorProfile{}, posts.PlatformInstagram, nil))
}

func TestCreatorServiceApplyEnrichment(t *testing.T) {
	repo := &fakeCreatorRepo{}
	svc := NewCreatorService(repo)

	creator := &models.Creator{ID: 7, Handle: "fitcreator"}
	summary := &enrich.Summary{
		CalculatedEngagementRate: 2.41,
		AvgLikes:                 120,
		ContentMix:               map[string]int{"image": 100},
	}

	require.NoError(t, svc.ApplyEnrichment(creator, summary, 15))

	var decoded enrich.Summary
	require.NoError(t, json.Unmarshal([]byte(repo.enrichments[7]), &decoded))
	assert.Equal(t, 2.41, decoded.CalculatedEngagementRate)
	assert.Equal(t, 120, decoded.AvgLikes)
	require.NotNil(t, repo.rates[7])
	assert.Equal(t, 2.41, *repo.rates[7])
}

func TestCreatorServiceApplyEnrichmentNilSummaryClears(t *testing.T) {
	repo := &fakeCreatorRepo{}
	svc := NewCreatorService(repo)

	require.NoError(t, svc.ApplyEnrichment(&models.Creator{ID: 3}, nil, 0))
	assert.Equal(t, "", repo.enrichments[3])
	assert.Nil(t, repo.rates[3])
}
