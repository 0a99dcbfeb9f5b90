package services

import (
	"errors"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HybridService maintains the cached 50/50 Elo+RPI blend. The hybrid score is
// purely derived; this cache exists so leaderboards can sort on a column, and
// it must be refreshed whenever either input changes.
type HybridService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewHybridService(db *gorm.DB, log *logrus.Logger) *HybridService {
	return &HybridService{
		db:  db,
		log: log,
	}
}

// RecalculateHybrid refreshes the wrestler's cached hybrid score from the
// stored Elo and RPI.
func (s *HybridService) RecalculateHybrid(wrestlerID, seasonID uint) error {
	return s.recalculateHybrid(s.db, wrestlerID, seasonID)
}

func (s *HybridService) recalculateHybrid(db *gorm.DB, wrestlerID, seasonID uint) error {
	var wrestler models.Wrestler
	if err := db.First(&wrestler, wrestlerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("wrestler not found")
		}
		return err
	}

	hybrid := utils.Hybrid(wrestler.EloRating, wrestler.RPI)

	s.log.WithFields(logrus.Fields{
		"wrestler_id": wrestlerID,
		"season_id":   seasonID,
		"hybrid":      hybrid,
	}).Debug("Recalculated hybrid score")

	return db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
		Update("hybrid_score", hybrid).Error
}
