package services

import (
	"errors"
	"sort"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EloService owns a wrestler's Elo rating. Ratings are always rebuilt from
// scratch by replaying the wrestler's full season match history in
// chronological order; there is no incremental update path.
type EloService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewEloService(db *gorm.DB, log *logrus.Logger) *EloService {
	return &EloService{
		db:  db,
		log: log,
	}
}

// RecalculateElo rebuilds and persists the wrestler's rating for the season.
//
// Opponent ratings are read as currently stored and never written: each
// wrestler's rating is owned exclusively by their own recalculation, so after
// a match changes the caller must recalculate both participants.
func (s *EloService) RecalculateElo(wrestlerID, seasonID uint) error {
	return s.recalculateElo(s.db, wrestlerID, seasonID)
}

func (s *EloService) recalculateElo(db *gorm.DB, wrestlerID, seasonID uint) error {
	var wrestler models.Wrestler
	if err := db.First(&wrestler, wrestlerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("wrestler not found")
		}
		return err
	}

	wrestler.EloRating = models.DefaultElo

	matches, err := s.seasonMatches(db, wrestlerID, seasonID)
	if err != nil {
		return err
	}

	// The replay rewrites the wrestler's rating history wholesale.
	if err := db.Unscoped().
		Where("wrestler_id = ? AND season_id = ?", wrestlerID, seasonID).
		Delete(&models.RatingHistory{}).Error; err != nil {
		return err
	}

	if len(matches) == 0 {
		s.log.WithFields(logrus.Fields{
			"wrestler_id": wrestlerID,
			"season_id":   seasonID,
		}).Debug("No matches found, Elo stays at baseline")
		return db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
			Update("elo_rating", wrestler.EloRating).Error
	}

	// Chronological replay. Same-date matches are ordered by match ID so the
	// result does not depend on fetch order.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Date.Equal(matches[j].Date) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Date.Before(matches[j].Date)
	})

	history := make([]models.RatingHistory, 0, len(matches))
	for _, match := range matches {
		opponentID, ok := match.OpponentOf(wrestlerID)
		if !ok {
			continue
		}

		var opponent models.Wrestler
		if err := db.First(&opponent, opponentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("opponent not found")
			}
			return err
		}

		expected := utils.ExpectedScore(wrestler.EloRating, opponent.EloRating)
		actual := 0.0
		if match.WinnerID == wrestlerID {
			actual = 1.0
		}

		before := wrestler.EloRating
		wrestler.EloRating = utils.UpdateElo(wrestler.EloRating, expected, actual)

		history = append(history, models.RatingHistory{
			WrestlerID: wrestlerID,
			MatchID:    match.ID,
			SeasonID:   seasonID,
			EloBefore:  before,
			EloAfter:   wrestler.EloRating,
			EloChange:  wrestler.EloRating - before,
			OpponentID: opponentID,
			MatchDate:  match.Date,
		})

		s.log.WithFields(logrus.Fields{
			"wrestler_id": wrestlerID,
			"opponent_id": opponentID,
			"match_id":    match.ID,
			"expected":    expected,
			"actual":      actual,
			"elo":         wrestler.EloRating,
		}).Debug("Replayed match")
	}

	if len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id": wrestlerID,
		"season_id":   seasonID,
		"matches":     len(matches),
		"elo":         wrestler.EloRating,
	}).Info("Recalculated Elo")

	return db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
		Update("elo_rating", wrestler.EloRating).Error
}

// GetRatingHistory returns the wrestler's per-match Elo progression for the
// season, oldest first.
func (s *EloService) GetRatingHistory(wrestlerID, seasonID uint) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	result := s.db.Where("wrestler_id = ? AND season_id = ?", wrestlerID, seasonID).
		Order("match_date ASC, id ASC").
		Preload("Match").
		Preload("Opponent").
		Find(&history)

	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}

// GetRecentRatingChanges returns the most recent rating history rows across
// all wrestlers.
func (s *EloService) GetRecentRatingChanges(limit int) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Wrestler").
		Preload("Match").
		Preload("Opponent").
		Find(&history)

	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}

func (s *EloService) seasonMatches(db *gorm.DB, wrestlerID, seasonID uint) ([]models.Match, error) {
	var matches []models.Match
	result := db.
		Where("season_id = ? AND (wrestler1_id = ? OR wrestler2_id = ?)", seasonID, wrestlerID, wrestlerID).
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}
