package services

import (
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GlickoService maintains the experimental Glicko-2 ratings. Unlike the Elo
// cascade this runs once per rating period (a week of matches), batched off
// the request path by the scheduler.
type GlickoService struct {
	db     *gorm.DB
	log    *logrus.Logger
	glicko *utils.Glicko2
}

func NewGlickoService(db *gorm.DB, log *logrus.Logger) *GlickoService {
	return &GlickoService{
		db:     db,
		log:    log,
		glicko: utils.NewGlicko2(),
	}
}

// WeeklyUpdate folds all matches in [start, end) into every participant's
// Glicko-2 state and returns the number of wrestlers updated. Opponent
// ratings are snapshotted at period start, so the result does not depend on
// processing order.
func (s *GlickoService) WeeklyUpdate(seasonID uint, start, end time.Time) (int, error) {
	var matches []models.Match
	result := s.db.
		Where("season_id = ? AND date >= ? AND date < ?", seasonID, start, end).
		Find(&matches)
	if result.Error != nil {
		return 0, result.Error
	}
	if len(matches) == 0 {
		return 0, nil
	}

	involved := make(map[uint]bool)
	for _, match := range matches {
		involved[match.Wrestler1ID] = true
		involved[match.Wrestler2ID] = true
	}

	ids := make([]uint, 0, len(involved))
	for id := range involved {
		ids = append(ids, id)
	}

	var wrestlers []models.Wrestler
	if err := s.db.Where("id IN ?", ids).Find(&wrestlers).Error; err != nil {
		return 0, err
	}

	snapshot := make(map[uint]models.Wrestler, len(wrestlers))
	for _, wrestler := range wrestlers {
		snapshot[wrestler.ID] = wrestler
	}

	outcomes := make(map[uint][]utils.GlickoOutcome)
	for _, match := range matches {
		winnerID := match.WinnerID
		loserID := match.LoserID()

		winnerOpp, ok1 := snapshot[loserID]
		loserOpp, ok2 := snapshot[winnerID]
		if !ok1 || !ok2 {
			continue
		}

		outcomes[winnerID] = append(outcomes[winnerID], utils.GlickoOutcome{
			OpponentRating: winnerOpp.GlickoRating,
			OpponentRD:     winnerOpp.GlickoRD,
			Score:          1,
		})
		outcomes[loserID] = append(outcomes[loserID], utils.GlickoOutcome{
			OpponentRating: loserOpp.GlickoRating,
			OpponentRD:     loserOpp.GlickoRD,
			Score:          0,
		})
	}

	updated := 0
	for wrestlerID, periodOutcomes := range outcomes {
		current := snapshot[wrestlerID]

		rating, rd, vol := s.glicko.UpdateRating(
			current.GlickoRating, current.GlickoRD, current.GlickoVol, periodOutcomes)

		if err := s.db.Model(&models.Wrestler{}).Where("id = ?", wrestlerID).
			Updates(map[string]interface{}{
				"glicko_rating": rating,
				"glicko_rd":     rd,
				"glicko_vol":    vol,
			}).Error; err != nil {
			return updated, err
		}
		updated++
	}

	s.log.WithFields(logrus.Fields{
		"season_id": seasonID,
		"matches":   len(matches),
		"updated":   updated,
	}).Info("Weekly Glicko-2 update completed")

	return updated, nil
}
