package services

import (
	"errors"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MinMatchesForRPI is the minimum match count below which RPI is considered
// statistically unreliable and reported as zero.
const MinMatchesForRPI = 3

// Fixed RPI weighting: own record matters least, direct opponents' strength
// matters most.
const (
	rpiOwnWeight    = 0.25
	rpiOppWeight    = 0.50
	rpiOppOppWeight = 0.25
)

// RPIService computes the three-level strength-of-schedule score: own win
// percentage, opponents' win percentage and opponents'-opponents' win
// percentage.
type RPIService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewRPIService(db *gorm.DB, log *logrus.Logger) *RPIService {
	return &RPIService{
		db:  db,
		log: log,
	}
}

// CalculateRPI computes the wrestler's RPI and its components without
// persisting anything.
func (s *RPIService) CalculateRPI(wrestlerID, seasonID uint) (models.RPIBreakdown, error) {
	return s.calculateRPI(s.db, wrestlerID, seasonID)
}

// RecalculateRPI computes and persists the wrestler's RPI, returning the new
// value.
func (s *RPIService) RecalculateRPI(wrestlerID, seasonID uint) (float64, error) {
	return s.recalculateRPI(s.db, wrestlerID, seasonID)
}

func (s *RPIService) recalculateRPI(db *gorm.DB, wrestlerID, seasonID uint) (float64, error) {
	breakdown, err := s.calculateRPI(db, wrestlerID, seasonID)
	if err != nil {
		return 0, err
	}

	if err := db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
		Update("rpi", breakdown.RPI).Error; err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id": wrestlerID,
		"season_id":   seasonID,
		"rpi":         breakdown.RPI,
	}).Debug("Recalculated RPI")

	return breakdown.RPI, nil
}

func (s *RPIService) calculateRPI(db *gorm.DB, wrestlerID, seasonID uint) (models.RPIBreakdown, error) {
	var breakdown models.RPIBreakdown

	var wrestler models.Wrestler
	if err := db.First(&wrestler, wrestlerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return breakdown, errors.New("wrestler not found")
		}
		return breakdown, err
	}

	// Below the threshold RPI is noise, not signal.
	if wrestler.TotalMatches() < MinMatchesForRPI {
		return breakdown, nil
	}

	breakdown.OwnWinPct = winPercentage(&wrestler)

	opponentIDs, err := s.distinctOpponents(db, wrestlerID, seasonID)
	if err != nil {
		return models.RPIBreakdown{}, err
	}

	opponents, err := s.loadWrestlers(db, opponentIDs)
	if err != nil {
		return models.RPIBreakdown{}, err
	}
	breakdown.OpponentWinPct = meanWinPercentage(opponents)

	// Opponents' opponents: one combined set across all direct opponents.
	// The wrestler themselves may appear here through rematches; that is
	// accepted, not filtered.
	oppOppSet := make(map[uint]bool)
	for _, opponentID := range opponentIDs {
		ids, err := s.distinctOpponents(db, opponentID, seasonID)
		if err != nil {
			return models.RPIBreakdown{}, err
		}
		for _, id := range ids {
			oppOppSet[id] = true
		}
	}

	oppOppIDs := make([]uint, 0, len(oppOppSet))
	for id := range oppOppSet {
		oppOppIDs = append(oppOppIDs, id)
	}

	oppOpponents, err := s.loadWrestlers(db, oppOppIDs)
	if err != nil {
		return models.RPIBreakdown{}, err
	}
	breakdown.OppOpponentWinPct = meanWinPercentage(oppOpponents)

	breakdown.RPI = rpiOwnWeight*breakdown.OwnWinPct +
		rpiOppWeight*breakdown.OpponentWinPct +
		rpiOppOppWeight*breakdown.OppOpponentWinPct

	return breakdown, nil
}

// distinctOpponents returns the deduplicated set of opponents the wrestler
// faced in the season. An opponent faced twice counts once: the metric favors
// opponent diversity over frequency.
func (s *RPIService) distinctOpponents(db *gorm.DB, wrestlerID, seasonID uint) ([]uint, error) {
	var matches []models.Match
	result := db.
		Where("season_id = ? AND (wrestler1_id = ? OR wrestler2_id = ?)", seasonID, wrestlerID, wrestlerID).
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}

	seen := make(map[uint]bool)
	opponents := make([]uint, 0, len(matches))
	for _, match := range matches {
		opponentID, ok := match.OpponentOf(wrestlerID)
		if !ok || seen[opponentID] {
			continue
		}
		seen[opponentID] = true
		opponents = append(opponents, opponentID)
	}

	return opponents, nil
}

func (s *RPIService) loadWrestlers(db *gorm.DB, ids []uint) ([]models.Wrestler, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var wrestlers []models.Wrestler
	if err := db.Where("id IN ?", ids).Find(&wrestlers).Error; err != nil {
		return nil, err
	}
	return wrestlers, nil
}

func winPercentage(w *models.Wrestler) float64 {
	total := w.TotalMatches()
	if total < 1 {
		total = 1
	}
	return float64(w.Wins) / float64(total)
}

func meanWinPercentage(wrestlers []models.Wrestler) float64 {
	if len(wrestlers) == 0 {
		return 0
	}
	var sum float64
	for i := range wrestlers {
		sum += winPercentage(&wrestlers[i])
	}
	return sum / float64(len(wrestlers))
}
