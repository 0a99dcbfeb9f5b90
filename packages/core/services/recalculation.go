package services

import (
	"fmt"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recalculator runs the full scoring cascade for affected wrestlers after a
// match mutation. The stage order matters: hybrid reads the Elo and RPI
// written by the stages before it.
type Recalculator struct {
	db        *gorm.DB
	log       *logrus.Logger
	elo       *EloService
	rpi       *RPIService
	hybrid    *HybridService
	dominance *DominanceService
}

func NewRecalculator(db *gorm.DB, log *logrus.Logger, elo *EloService, rpi *RPIService, hybrid *HybridService, dominance *DominanceService) *Recalculator {
	return &Recalculator{
		db:        db,
		log:       log,
		elo:       elo,
		rpi:       rpi,
		hybrid:    hybrid,
		dominance: dominance,
	}
}

// RecalculateAll reruns Elo, RPI, hybrid and dominance for each wrestler in
// turn. Any failure aborts the cascade; the caller owns rollback.
func (r *Recalculator) RecalculateAll(seasonID uint, wrestlerIDs ...uint) error {
	return r.recalculateAll(r.db, seasonID, wrestlerIDs...)
}

func (r *Recalculator) recalculateAll(db *gorm.DB, seasonID uint, wrestlerIDs ...uint) error {
	for _, wrestlerID := range wrestlerIDs {
		if err := r.elo.recalculateElo(db, wrestlerID, seasonID); err != nil {
			return fmt.Errorf("elo recalculation for wrestler %d: %w", wrestlerID, err)
		}
		if _, err := r.rpi.recalculateRPI(db, wrestlerID, seasonID); err != nil {
			return fmt.Errorf("rpi recalculation for wrestler %d: %w", wrestlerID, err)
		}
		if err := r.hybrid.recalculateHybrid(db, wrestlerID, seasonID); err != nil {
			return fmt.Errorf("hybrid recalculation for wrestler %d: %w", wrestlerID, err)
		}
		if _, err := r.dominance.recalculateDominance(db, wrestlerID, seasonID); err != nil {
			return fmt.Errorf("dominance recalculation for wrestler %d: %w", wrestlerID, err)
		}
	}

	r.log.WithFields(logrus.Fields{
		"season_id": seasonID,
		"wrestlers": len(wrestlerIDs),
	}).Debug("Recalculation cascade completed")

	return nil
}

// recalculateRecord rebuilds a wrestler's win/loss record and per-method win
// counters from their season match history.
func recalculateRecord(db *gorm.DB, wrestlerID, seasonID uint) error {
	var matches []models.Match
	result := db.
		Where("season_id = ? AND (wrestler1_id = ? OR wrestler2_id = ?)", seasonID, wrestlerID, wrestlerID).
		Find(&matches)
	if result.Error != nil {
		return result.Error
	}

	var wins, losses, falls, techFalls, majorDecisions int
	for _, match := range matches {
		if match.WinnerID != wrestlerID {
			losses++
			continue
		}
		wins++
		switch match.WinMethod {
		case models.WinMethodFall:
			falls++
		case models.WinMethodTechnicalFall:
			techFalls++
		case models.WinMethodMajorDecision:
			majorDecisions++
		}
	}

	return db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).Updates(map[string]interface{}{
		"wins":            wins,
		"losses":          losses,
		"falls":           falls,
		"tech_falls":      techFalls,
		"major_decisions": majorDecisions,
	}).Error
}
