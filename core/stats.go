package core

import (
	"math"
	"time"

	"github.com/okabrink/creator-scout/db"
	"github.com/okabrink/creator-scout/db/models"
	"github.com/okabrink/creator-scout/db/repository"
	"github.com/okabrink/creator-scout/logger"
)

const recentRunsLimit = 5

// Stats is an aggregate snapshot of the local database.
type Stats struct {
	TotalCreators     int64
	AddedThisWeek     int64
	AvgEngagement     float64
	TopCategory       string
	TotalBrands       int64
	TotalPartnerships int64
	TotalPosts        int64
	RecentRuns        []models.DiscoveryRun
}

// StatsService computes dashboard numbers from the repositories.
type StatsService struct {
	creators     repository.CreatorRepository
	brands       repository.BrandRepository
	partnerships repository.PartnershipRepository
	posts        repository.PostRepository
	runs         repository.RunRepository
}

func NewStatsService(database *db.Database) *StatsService {
	return &StatsService{
		creators:     repository.NewCreatorRepository(database.DB),
		brands:       repository.NewBrandRepository(database.DB),
		partnerships: repository.NewPartnershipRepository(database.DB),
		posts:        repository.NewPostRepository(database.DB),
		runs:         repository.NewRunRepository(database.DB),
	}
}

// Collect never fails outright; a query error zeroes that stat and is logged.
func (s *StatsService) Collect() Stats {
	var stats Stats
	var err error

	if stats.TotalCreators, err = s.creators.Count(); err != nil {
		logger.Logger.Printf("Failed to count creators: %v", err)
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	if stats.AddedThisWeek, err = s.creators.CountSince(weekAgo); err != nil {
		logger.Logger.Printf("Failed to count recent creators: %v", err)
	}
	avg, err := s.creators.AverageEngagementRate()
	if err != nil {
		logger.Logger.Printf("Failed to average engagement: %v", err)
	}
	stats.AvgEngagement = math.Round(avg*100) / 100
	if stats.TopCategory, err = s.creators.TopCategory(); err != nil {
		logger.Logger.Printf("Failed to find top category: %v", err)
	}
	if stats.TotalBrands, err = s.brands.Count(); err != nil {
		logger.Logger.Printf("Failed to count brands: %v", err)
	}
	if stats.TotalPartnerships, err = s.partnerships.Count(); err != nil {
		logger.Logger.Printf("Failed to count partnerships: %v", err)
	}
	if stats.TotalPosts, err = s.posts.Count(); err != nil {
		logger.Logger.Printf("Failed to count posts: %v", err)
	}
	if stats.RecentRuns, err = s.runs.ListRecent(recentRunsLimit); err != nil {
		logger.Logger.Printf("Failed to list recent runs: %v", err)
	}
	return stats
}
