package services

import (
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StatsService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewStatsService(db *gorm.DB, log *logrus.Logger) *StatsService {
	return &StatsService{
		db:  db,
		log: log,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalWrestlers int64
	var totalMatches int64
	var matchesLast7Days int64
	var matchesPrevious7Days int64

	if err := s.db.Model(&models.Wrestler{}).Count(&totalWrestlers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Match{}).
		Where("date >= ?", last7DaysStart).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("date >= ? AND date < ?", previous7DaysStart, last7DaysStart).
		Count(&matchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalWrestlers:       totalWrestlers,
		TotalMatches:         totalMatches,
		MatchesLast7Days:     matchesLast7Days,
		MatchesPrevious7Days: matchesPrevious7Days,
	}, nil
}
