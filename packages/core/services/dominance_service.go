package services

import (
	"errors"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DominanceService scores win quality: decisive win methods earn points,
// losses earn nothing but still count in the denominator, so a loss dilutes
// the average rather than being excluded.
type DominanceService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewDominanceService(db *gorm.DB, log *logrus.Logger) *DominanceService {
	return &DominanceService{
		db:  db,
		log: log,
	}
}

// CalculateDominance returns the wrestler's average points-per-match for the
// season, rounded to two decimals. Unlike Elo this is a pure function of the
// match set; ordering does not matter.
func (s *DominanceService) CalculateDominance(wrestlerID, seasonID uint) (float64, error) {
	return s.calculateDominance(s.db, wrestlerID, seasonID)
}

// RecalculateDominance computes and persists the wrestler's dominance score,
// returning the new value.
func (s *DominanceService) RecalculateDominance(wrestlerID, seasonID uint) (float64, error) {
	return s.recalculateDominance(s.db, wrestlerID, seasonID)
}

func (s *DominanceService) recalculateDominance(db *gorm.DB, wrestlerID, seasonID uint) (float64, error) {
	score, err := s.calculateDominance(db, wrestlerID, seasonID)
	if err != nil {
		return 0, err
	}

	if err := db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
		Update("dominance_score", score).Error; err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id": wrestlerID,
		"season_id":   seasonID,
		"dominance":   score,
	}).Debug("Recalculated dominance score")

	return score, nil
}

func (s *DominanceService) calculateDominance(db *gorm.DB, wrestlerID, seasonID uint) (float64, error) {
	var wrestler models.Wrestler
	if err := db.First(&wrestler, wrestlerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.New("wrestler not found")
		}
		return 0, err
	}

	var matches []models.Match
	result := db.
		Where("season_id = ? AND (wrestler1_id = ? OR wrestler2_id = ?)", seasonID, wrestlerID, wrestlerID).
		Find(&matches)
	if result.Error != nil {
		return 0, result.Error
	}

	if len(matches) == 0 {
		return 0, nil
	}

	var totalPoints float64
	for _, match := range matches {
		if match.WinnerID == wrestlerID {
			totalPoints += models.DominancePoints(match.WinMethod)
		}
	}

	return utils.Round2(totalPoints / float64(len(matches))), nil
}
